package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lggomez/jpegcore"
	"github.com/lggomez/jpegcore/internal/diagnostics"
)

// NewInfoCmd prints an image's metadata without materializing pixels.
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "print JPEG metadata without decoding pixels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile, _ := cmd.Flags().GetString("log-file")
			verbose, _ := cmd.Flags().GetBool("verbose")
			log := diagnostics.NewLogger(diagnostics.LogConfig{FilePath: logFile, Verbose: verbose})

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			sink := newPNGSink(log)
			dec := jpegcore.NewDecoder(f, sink)

			if err := dec.Decode(true); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}

			mode := "baseline"
			if dec.IsProgressive() {
				mode = "progressive"
			}

			colorModel, err := dec.ColorModel()
			if err != nil {
				return fmt.Errorf("determine color model for %s: %w", path, err)
			}

			fmt.Printf("%s: %dx%d components=%d colorModel=%s mode=%s restartInterval=%d resolution=%dx%d\n",
				path, dec.Width(), dec.Height(), dec.NumComponents(), colorModel, mode, dec.RestartInterval(), sink.resH, sink.resV)

			return nil
		},
	}

	return cmd
}
