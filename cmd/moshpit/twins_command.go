package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/report"
)

func newTwinsCommand(ctx *commandContext) *cobra.Command {
	var genre string
	var top int
	var matrix bool

	cmd := &cobra.Command{
		Use:   "twins",
		Short: "Artist pairs that keep sharing festival bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			festivals, err := loadFestivals(cfg)
			if err != nil {
				return err
			}

			twins := analysis.NewTwins(festivals, genre)

			if matrix {
				m := twins.Matrix(top)
				tbl := report.Table{
					Headers: append([]string{""}, m.Artists...),
					Empty:   "No repeat performers found",
				}
				for i, artist := range m.Artists {
					row := make([]string, 0, len(m.Artists)+1)
					row = append(row, artist)
					for j := range m.Artists {
						row = append(row, report.Int(m.Counts[i][j]))
					}
					tbl.Rows = append(tbl.Rows, row)
				}
				return ctx.emit(cmd, tbl, m)
			}

			pairs := twins.Pairs()
			if top > 0 && len(pairs) > top {
				pairs = pairs[:top]
			}

			tbl := report.Table{
				Title:   twinsTitle(genre),
				Headers: []string{"Artist", "Artist", "Shared bills", "Festivals"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft},
				Empty:   "No artist pairs shared more than one bill",
			}
			for _, pair := range pairs {
				tbl.AddRow(pair.A, pair.B, report.Int(pair.Count), strings.Join(pair.Festivals, ", "))
			}
			return ctx.emit(cmd, tbl, pairs)
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Only count pairs where one artist matches this genre")
	cmd.Flags().IntVar(&top, "top", 10, "Number of pairs (or matrix artists) to show")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "Render a co-appearance matrix for the top performers")
	return cmd
}

func twinsTitle(genre string) string {
	if genre == "" {
		return "Festival twins"
	}
	return fmt.Sprintf("Festival twins (%s)", genre)
}
