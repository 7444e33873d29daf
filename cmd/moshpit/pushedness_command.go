package main

import (
	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/config"
	"moshpit/internal/report"
)

func newPushednessCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var perTag int
	var minListeners int
	var quantile float64

	cmd := &cobra.Command{
		Use:   "pushedness",
		Short: "Rank genres by how hard Spotify pushes their artists",
		Long: "Pushedness is monthly listeners divided by followers: listeners a platform\n" +
			"delivers beyond an artist's organic following. Genre medians are computed\n" +
			"over the top Last.fm artists of each tag, with outliers trimmed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnvironment(cmd, func(env *environment) error {
				opts := config.Pushedness{
					MinListeners:    minListeners,
					OutlierQuantile: quantile,
					TopArtists:      perTag,
				}
				if opts.MinListeners == 0 {
					opts.MinListeners = env.cfg.Pushedness.MinListeners
				}
				if opts.OutlierQuantile == 0 {
					opts.OutlierQuantile = env.cfg.Pushedness.OutlierQuantile
				}
				if opts.TopArtists == 0 {
					opts.TopArtists = env.cfg.Pushedness.TopArtists
				}

				profiles, err := gatherTagProfiles(cmd.Context(), env, splitList(tagsFlag), opts.TopArtists)
				if err != nil {
					return err
				}
				genres, err := analysis.ComparePushedness(profiles, opts)
				if err != nil {
					return err
				}

				tbl := report.Table{
					Title:   "Genre pushedness (listeners per follower)",
					Headers: []string{"Genre", "Artists", "Median pushed", "Median followers", "Median listeners", "Most pushed", "Least pushed"},
					Aligns: []report.Alignment{
						report.AlignLeft, report.AlignRight, report.AlignRight,
						report.AlignRight, report.AlignRight, report.AlignLeft, report.AlignLeft,
					},
				}
				for _, genre := range genres {
					tbl.AddRow(
						genre.Genre,
						report.Int(genre.Artists),
						report.Float(genre.MedianPushedness, 2),
						report.Int64(int64(genre.MedianFollowers)),
						report.Int64(int64(genre.MedianListeners)),
						genre.MostPushed.Artist,
						genre.LeastPushed.Artist,
					)
				}
				return ctx.emit(cmd, tbl, genres)
			})
		},
	}

	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated Last.fm genre tags")
	cmd.Flags().IntVar(&perTag, "per-tag", 0, "Top artists per tag (default from config)")
	cmd.Flags().IntVar(&minListeners, "min-listeners", 0, "Listener floor (default from config)")
	cmd.Flags().Float64Var(&quantile, "quantile", 0, "Outlier trim quantile (default from config)")
	return cmd
}
