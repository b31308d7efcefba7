package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRoot builds the jpegcore command tree, grounded on the root-plus-
// subcommands shape used elsewhere in the reference stack's CLI.
func NewRoot(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   "jpegcore",
		Short: "decode baseline and progressive JPEG images",
		Long:  "jpegcore decodes JPEG/JFIF images without depending on the standard library's image/jpeg package.",
	}

	pf := root.PersistentFlags()
	pf.String("log-file", "", "path to a rotating log file (defaults to stderr)")
	pf.Bool("verbose", false, "enable debug-level logging")

	root.AddCommand(NewDecodeCmd(ctx), NewInfoCmd(ctx))

	return root
}
