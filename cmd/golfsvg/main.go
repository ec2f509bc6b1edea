// Command golfsvg converts OpenStreetMap golf-course exports into
// repaired, styled SVG artwork ready for 3D mesh generation.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairwaylabs/golfsvg"
)

var (
	flagVerbose bool
	flagStyles  string
	flagWidth   float64
)

func main() {
	root := &cobra.Command{
		Use:     "golfsvg",
		Short:   "Convert OSM golf-course exports to mesh-ready SVG",
		Version: golfsvg.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				golfsvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagStyles, "styles", "styles.json", "style table file")
	root.PersistentFlags().Float64Var(&flagWidth, "width", 1000, "output canvas width in pixels")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newCheckCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
