package main

import (
	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/dataset"
	"moshpit/internal/logging"
	"moshpit/internal/musicbrainz"
	"moshpit/internal/report"
)

func newReleasesCommand(ctx *commandContext) *cobra.Command {
	var listPath string
	var recencyYears int
	var horizonYears int

	cmd := &cobra.Command{
		Use:   "releases [artist...]",
		Short: "Predict each artist's next studio album from their release cadence",
		RunE: func(cmd *cobra.Command, args []string) error {
			artists, err := resolveArtists(args, listPath)
			if err != nil {
				return err
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				mbClient, err := musicbrainz.New(env.cfg.MusicBrainz, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				logger := logging.NewComponentLogger(env.logger, "cli")

				var releases []dataset.Release
				for _, artist := range artists {
					mbid, err := mbClient.ArtistMBID(cmd.Context(), artist)
					if err != nil {
						logger.Warn("artist lookup failed", logging.Args(
							logging.String("artist", artist),
							logging.Error(err))...)
						continue
					}
					albums, err := mbClient.ReleaseGroups(cmd.Context(), mbid, artist)
					if err != nil {
						logger.Warn("release groups failed", logging.Args(
							logging.String("artist", artist),
							logging.Error(err))...)
						continue
					}
					releases = append(releases, albums...)
				}

				predictions, err := analysis.PredictReleases(releases, analysis.ReleaseOptions{
					RecencyYears: recencyYears,
					HorizonYears: horizonYears,
				})
				if err != nil {
					return err
				}

				tbl := report.Table{
					Title:   "Next studio album predictions",
					Headers: []string{"Artist", "Albums", "Last release", "Gap (days)", "Predicted", "Window"},
					Aligns: []report.Alignment{
						report.AlignLeft, report.AlignRight, report.AlignRight,
						report.AlignRight, report.AlignRight, report.AlignLeft,
					},
				}
				for _, p := range predictions {
					tbl.AddRow(
						p.Artist,
						report.Int(p.Releases),
						report.Date(p.LastRelease),
						report.Int(p.MedianGap),
						report.Date(p.NextPredicted),
						report.Date(p.NextEarliest)+" to "+report.Date(p.NextLatest),
					)
				}
				return ctx.emit(cmd, tbl, predictions)
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "artists", "", "File with artist names (CSV or one per line)")
	cmd.Flags().IntVar(&recencyYears, "recency-years", 10, "Skip artists whose last album is older than this (0 disables)")
	cmd.Flags().IntVar(&horizonYears, "horizon-years", 0, "Skip predictions further out than this (0 disables)")
	return cmd
}
