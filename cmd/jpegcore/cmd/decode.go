package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lggomez/jpegcore"
	"github.com/lggomez/jpegcore/internal/diagnostics"
)

// NewDecodeCmd decodes a JPEG file to PNG.
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "decode a JPEG file and write it out as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile, _ := cmd.Flags().GetString("log-file")
			verbose, _ := cmd.Flags().GetBool("verbose")
			log := diagnostics.NewLogger(diagnostics.LogConfig{FilePath: logFile, Verbose: verbose})

			metadataOnly, _ := cmd.Flags().GetBool("metadata-only")
			outPath, _ := cmd.Flags().GetString("out")
			upsample, _ := cmd.Flags().GetString("upsample")

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			sink := newPNGSink(log)
			dec := jpegcore.NewDecoder(f, sink)

			if err := dec.SetUpsampleFilter(upsample); err != nil {
				return err
			}

			if err := dec.Decode(metadataOnly); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}

			if metadataOnly || sink.img == nil {
				fmt.Printf("%s: resolution=%dx%d\n", path, sink.resH, sink.resV)
				return nil
			}

			if outPath == "" {
				outPath = strings.TrimSuffix(path, filepathExt(path)) + ".png"
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer out.Close()

			if err := png.Encode(out, sink.img); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}

			fmt.Printf("%s -> %s (%dx%d)\n", path, outPath, sink.width, sink.height)

			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("out", "", "output PNG path (defaults to the input path with a .png extension)")
	pf.Bool("metadata-only", false, "stop after reading metadata, without decoding pixels")
	pf.String("upsample", "nearest", "chroma upsampling filter: nearest or catmullrom")

	return cmd
}

func filepathExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}

	return ""
}
