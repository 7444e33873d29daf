package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/report"
)

func newLyricsCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "lyrics ARTIST",
		Short: "Rank artists by lyrical similarity to a subject artist",
		Long: "Builds per-artist lyric profiles (length, vocabulary diversity, narrative\n" +
			"perspective, directness, sentiment) from saved Genius lyrics, reduces them\n" +
			"with PCA, and ranks the other artists by distance to the subject.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, err := requireOneArtist(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			songs, err := loadSongs(cfg)
			if err != nil {
				return err
			}

			profiles, err := analysis.AggregateLyrics(songs)
			if err != nil {
				return err
			}
			neighbors, err := analysis.NearestByLyrics(profiles, artist)
			if err != nil {
				return err
			}
			if top > 0 && len(neighbors) > top {
				neighbors = neighbors[:top]
			}

			tbl := report.Table{
				Title:   fmt.Sprintf("Lyrically closest artists to %s", artist),
				Headers: []string{"Artist", "Distance"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignRight},
			}
			for _, neighbor := range neighbors {
				tbl.AddRow(neighbor.Artist, report.Float(neighbor.Distance, 3))
			}
			return ctx.emit(cmd, tbl, neighbors)
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of artists to show")
	return cmd
}
