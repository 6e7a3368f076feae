package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kansasdcf/legacyrec/compress"
	"github.com/kansasdcf/legacyrec/format"
)

// newMeasureCmd reports how each codec compresses a record file, to pick
// the --compression of store put.
func newMeasureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "measure FILE",
		Short: "Compress FILE with every codec and print the sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMPRESSION\tORIGINAL\tCOMPRESSED\tRATIO\tSAVINGS\tELAPSED")
			for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
				stats, err := compress.Measure(ct, raw)
				if err != nil {
					return err
				}
				a.logger.Debug().Str("compression", ct.String()).Dur("elapsed", stats.Elapsed).Msg("measured")
				fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.1f%%\t%s\n",
					ct, stats.OriginalSize, stats.CompressedSize, stats.Ratio(), stats.SpaceSavings(), stats.Elapsed)
			}

			return w.Flush()
		},
	}
}
