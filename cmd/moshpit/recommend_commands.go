package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moshpit/internal/recommend"
	"moshpit/internal/report"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Festival recommendations from mined lineup co-appearances",
	}

	recommendCmd.AddCommand(newRecommendMineCommand(ctx))
	recommendCmd.AddCommand(newRecommendFestivalsCommand(ctx))
	recommendCmd.AddCommand(newRecommendCoappearCommand(ctx))
	recommendCmd.AddCommand(newRecommendGraphCommand(ctx))
	recommendCmd.AddCommand(newRecommendSummaryCommand(ctx))

	return recommendCmd
}

// loadRecommender restores a mined recommender from the data directory.
func loadRecommender(ctx *commandContext) (*recommend.Recommender, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	recommender := recommend.New(nil)
	if err := recommender.Load(recommenderPath(cfg)); err != nil {
		return nil, fmt.Errorf("load recommender (run `moshpit recommend mine` first): %w", err)
	}
	return recommender, nil
}

func newRecommendMineCommand(ctx *commandContext) *cobra.Command {
	var minSupport int
	var maxLength int

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine association rules from saved festival lineups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnvironment(cmd, func(env *environment) error {
				festivals, err := loadFestivals(env.cfg)
				if err != nil {
					return err
				}

				if minSupport == 0 {
					minSupport = env.cfg.Mining.MinSupportLineups
				}
				if maxLength == 0 {
					maxLength = env.cfg.Mining.MaxRuleLength
				}

				recommender := recommend.New(env.logger)
				if err := recommender.Mine(festivals, recommend.MineOptions{
					MinSupportLineups: minSupport,
					MaxRuleLength:     maxLength,
				}); err != nil {
					return err
				}
				if err := recommender.Save(recommenderPath(env.cfg)); err != nil {
					return err
				}

				summary := recommender.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "Mined %s and %s from %s\n",
					pluralize(summary.Itemsets, "itemset"),
					pluralize(summary.Rules, "rule"),
					pluralize(summary.Festivals, "lineup"))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minSupport, "min-support", 0, "Minimum lineups an itemset must appear in (default from config)")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Maximum itemset length (default from config)")
	return cmd
}

func newRecommendFestivalsCommand(ctx *commandContext) *cobra.Command {
	var minLift float64
	var excludePlayed bool
	var raw bool
	var top int

	cmd := &cobra.Command{
		Use:   "festivals ARTIST",
		Short: "Rank festivals by lineup overlap with an artist's co-appearance circle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, err := requireOneArtist(args)
			if err != nil {
				return err
			}
			recommender, err := loadRecommender(ctx)
			if err != nil {
				return err
			}

			cfg, _ := ctx.ensureConfig()
			if minLift == 0 {
				minLift = cfg.Mining.MinLift
			}

			scores, err := recommender.RecommendFestivals(artist, recommend.RecommendOptions{
				MinLift:       minLift,
				ExcludePlayed: excludePlayed,
				Raw:           raw,
			})
			if err != nil {
				return err
			}
			if top > 0 && len(scores) > top {
				scores = scores[:top]
			}

			tbl := report.Table{
				Title:   fmt.Sprintf("Festival recommendations for %s", artist),
				Headers: []string{"Festival", "Score"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignRight},
				Empty:   "No festivals matched; try a lower --min-lift",
			}
			for _, score := range scores {
				tbl.AddRow(score.Festival, report.Float(score.Score, 2))
			}
			return ctx.emit(cmd, tbl, scores)
		},
	}

	cmd.Flags().Float64Var(&minLift, "min-lift", 0, "Minimum rule lift (default from config)")
	cmd.Flags().BoolVar(&excludePlayed, "exclude-played", false, "Drop festivals the artist already played")
	cmd.Flags().BoolVar(&raw, "raw", false, "Score per festival edition instead of averaging across years")
	cmd.Flags().IntVar(&top, "top", 0, "Limit the number of rows (0 means all)")
	return cmd
}

func newRecommendCoappearCommand(ctx *commandContext) *cobra.Command {
	var top int
	var minSimilarity float64

	cmd := &cobra.Command{
		Use:   "coappear ARTIST",
		Short: "Rank artists by festival co-appearance similarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, err := requireOneArtist(args)
			if err != nil {
				return err
			}
			recommender, err := loadRecommender(ctx)
			if err != nil {
				return err
			}

			scores, err := recommender.CoAppearingArtists(artist, top, minSimilarity)
			if err != nil {
				return err
			}

			tbl := report.Table{
				Title:   fmt.Sprintf("Artists co-appearing with %s", artist),
				Headers: []string{"Artist", "Jaccard"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignRight},
				Empty:   "No co-appearing artists found",
			}
			for _, score := range scores {
				tbl.AddRow(score.Artist, report.Float(score.Score, 3))
			}
			return ctx.emit(cmd, tbl, scores)
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of artists to show")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "Minimum Jaccard similarity")
	return cmd
}

func newRecommendGraphCommand(ctx *commandContext) *cobra.Command {
	var top int
	var minSimilarity float64

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Similarity edges between the most frequent performers",
		RunE: func(cmd *cobra.Command, args []string) error {
			recommender, err := loadRecommender(ctx)
			if err != nil {
				return err
			}

			edges, err := recommender.SimilarityGraph(top, minSimilarity)
			if err != nil {
				return err
			}

			tbl := report.Table{
				Headers: []string{"Artist", "Artist", "Weight"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignRight},
				Empty:   "No edges above the similarity floor",
			}
			for _, edge := range edges {
				tbl.AddRow(edge.A, edge.B, report.Float(edge.Weight, 3))
			}
			return ctx.emit(cmd, tbl, edges)
		},
	}

	cmd.Flags().IntVar(&top, "top", 30, "Number of top performers to include")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0.1, "Minimum edge weight")
	return cmd
}

func newRecommendSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show mined recommender statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			recommender, err := loadRecommender(ctx)
			if err != nil {
				return err
			}
			summary := recommender.Summary()

			tbl := report.Table{
				Headers: []string{"Metric", "Value"},
				Aligns:  []report.Alignment{report.AlignLeft, report.AlignRight},
			}
			tbl.AddRow("Festivals", report.Int(summary.Festivals))
			tbl.AddRow("Artists", report.Int(summary.Artists))
			tbl.AddRow("Frequent itemsets", report.Int(summary.Itemsets))
			tbl.AddRow("Association rules", report.Int(summary.Rules))
			tbl.AddRow("Min support (lineups)", report.Int(summary.Settings.MinSupportLineups))
			tbl.AddRow("Max rule length", report.Int(summary.Settings.MaxRuleLength))
			return ctx.emit(cmd, tbl, summary)
		},
	}
}
