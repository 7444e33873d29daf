package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moshpit/internal/report"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the HTTP response cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnvironment(cmd, func(env *environment) error {
				stats, err := env.cache.Stats(cmd.Context())
				if err != nil {
					return err
				}

				tbl := report.Table{
					Headers: []string{"Metric", "Value"},
					Aligns:  []report.Alignment{report.AlignLeft, report.AlignRight},
				}
				tbl.AddRow("Database", env.cache.Path())
				tbl.AddRow("Entries", report.Int64(stats.Entries))
				tbl.AddRow("Size (bytes)", report.Int64(stats.SizeBytes))
				tbl.AddRow("Oldest fetch", formatFetchTime(stats.Oldest))
				tbl.AddRow("Newest fetch", formatFetchTime(stats.Newest))
				return ctx.emit(cmd, tbl, stats)
			})
		},
	}
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	var olderThanDays int

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove cached responses older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThanDays < 0 {
				return fmt.Errorf("invalid --older-than-days %d", olderThanDays)
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				cutoff := time.Now().AddDate(0, 0, -olderThanDays)
				removed, err := env.cache.Purge(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", pluralize(int(removed), "cached response"))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&olderThanDays, "older-than-days", 30, "Purge responses fetched more than this many days ago")
	return cmd
}

func formatFetchTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}
