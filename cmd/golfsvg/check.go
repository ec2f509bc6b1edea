package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairwaylabs/golfsvg"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [map.osm]",
		Short: "Run the repair pipeline and report verdicts without writing SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "map.osm"
			if len(args) == 1 {
				input = args[0]
			}
			sources, _, table, err := extract(input)
			if err != nil {
				return err
			}
			feats := make([]golfsvg.Feature, len(sources))
			for i, s := range sources {
				feats[i] = s.feature
			}
			results, err := golfsvg.RepairAll(cmd.Context(), feats, table.Policies())
			if err != nil {
				return err
			}
			overlaps := golfsvg.CategoryOverlaps(results, table.Policies())
			fmt.Print(renderReport(sources, results, overlaps))
			return nil
		},
	}
}
