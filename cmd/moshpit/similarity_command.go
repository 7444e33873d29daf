package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/lastfm"
	"moshpit/internal/metallum"
	"moshpit/internal/musicbrainz"
	"moshpit/internal/report"
)

func newSimilarityCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var discrepant int

	cmd := &cobra.Command{
		Use:   "similarity ARTIST",
		Short: "Compare Metallum and Last.fm similar-artist rankings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, err := requireOneArtist(args)
			if err != nil {
				return err
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				metallumClient, err := metallum.New(env.cfg.Metallum, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				mbClient, err := musicbrainz.New(env.cfg.MusicBrainz, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				lastfmClient, err := lastfm.New(env.cfg.LastFM, env.fetcher, env.logger)
				if err != nil {
					return err
				}

				metallumSimilar, err := metallumClient.SimilarArtists(cmd.Context(), artist)
				if err != nil {
					return fmt.Errorf("metallum similar artists: %w", err)
				}

				mbid, err := mbClient.ArtistMBID(cmd.Context(), artist)
				if err != nil {
					return fmt.Errorf("resolve artist mbid: %w", err)
				}
				lastfmSimilar, err := lastfmClient.SimilarArtists(cmd.Context(), mbid, limit)
				if err != nil {
					return fmt.Errorf("lastfm similar artists: %w", err)
				}

				result, err := analysis.ComparePlatformSimilarity(artist, metallumSimilar, lastfmSimilar)
				if err != nil {
					return err
				}

				rows := result.Rows
				if discrepant > 0 {
					rows = result.MostDiscrepant(discrepant)
				}

				tbl := report.Table{
					Title: fmt.Sprintf("Similar artists for %s (Spearman %.3f over %s)",
						artist, result.Correlation, pluralize(len(result.Rows), "shared artist")),
					Headers: []string{"Artist", "Metallum", "Last.fm", "Rank (M)", "Rank (L)"},
					Aligns: []report.Alignment{
						report.AlignLeft, report.AlignRight, report.AlignRight,
						report.AlignRight, report.AlignRight,
					},
				}
				for _, row := range rows {
					tbl.AddRow(
						row.Artist,
						report.Float(row.MetallumScore, 0),
						report.Float(row.LastFMScore, 3),
						report.Float(row.MetallumRank, 1),
						report.Float(row.LastFMRank, 1),
					)
				}
				return ctx.emit(cmd, tbl, result)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "How many Last.fm similar artists to request")
	cmd.Flags().IntVar(&discrepant, "discrepant", 0, "Show only the N rows the platforms disagree on hardest")
	return cmd
}
