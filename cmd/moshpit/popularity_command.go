package main

import (
	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/report"
)

func newPopularityCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var perTag int

	cmd := &cobra.Command{
		Use:   "popularity",
		Short: "Compare genre popularity across Last.fm and Spotify",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnvironment(cmd, func(env *environment) error {
				if perTag == 0 {
					perTag = env.cfg.Pushedness.TopArtists
				}
				profiles, err := gatherTagProfiles(cmd.Context(), env, splitList(tagsFlag), perTag)
				if err != nil {
					return err
				}
				genres, err := analysis.ComparePopularity(profiles)
				if err != nil {
					return err
				}

				tbl := report.Table{
					Title:   "Genre popularity",
					Headers: []string{"Genre", "Artists", "Median Last.fm listeners", "Median Spotify followers", "Median popularity"},
					Aligns: []report.Alignment{
						report.AlignLeft, report.AlignRight, report.AlignRight,
						report.AlignRight, report.AlignRight,
					},
				}
				for _, genre := range genres {
					tbl.AddRow(
						genre.Genre,
						report.Int(genre.Artists),
						report.Int64(int64(genre.MedianLastFMListeners)),
						report.Int64(int64(genre.MedianSpotifyFollowers)),
						report.Float(genre.MedianSpotifyPopularity, 0),
					)
				}
				return ctx.emit(cmd, tbl, genres)
			})
		},
	}

	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated Last.fm genre tags")
	cmd.Flags().IntVar(&perTag, "per-tag", 0, "Top artists per tag (default from config)")
	return cmd
}
