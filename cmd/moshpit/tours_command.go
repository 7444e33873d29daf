package main

import (
	"strings"

	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/dataset"
	"moshpit/internal/report"
)

func newToursCommand(ctx *commandContext) *cobra.Command {
	var artistFilter string

	cmd := &cobra.Command{
		Use:   "tours",
		Short: "Summarise named tours from saved setlist data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			setlists, err := loadSetlists(cfg)
			if err != nil {
				return err
			}
			if artistFilter != "" {
				key := dataset.FoldName(artistFilter)
				filtered := setlists[:0]
				for _, setlist := range setlists {
					if dataset.FoldName(setlist.Artist) == key {
						filtered = append(filtered, setlist)
					}
				}
				setlists = filtered
			}

			tours, err := analysis.SummariseTours(setlists)
			if err != nil {
				return err
			}

			tbl := report.Table{
				Title:   toursTitle(artistFilter),
				Headers: []string{"Artist", "Tour", "Start", "End", "Shows", "Countries"},
				Aligns: []report.Alignment{
					report.AlignLeft, report.AlignLeft, report.AlignRight,
					report.AlignRight, report.AlignRight, report.AlignRight,
				},
				Empty: "No named tours in the setlist data",
			}
			for _, tour := range tours {
				tbl.AddRow(
					tour.Artist,
					tour.Tour,
					report.Date(tour.Start),
					report.Date(tour.End),
					report.Int(tour.Shows),
					report.Int(tour.Countries),
				)
			}
			return ctx.emit(cmd, tbl, tours)
		},
	}

	cmd.Flags().StringVar(&artistFilter, "artist", "", "Only show tours for this artist")
	return cmd
}

func toursTitle(artist string) string {
	if strings.TrimSpace(artist) == "" {
		return "Tours"
	}
	return "Tours for " + artist
}
