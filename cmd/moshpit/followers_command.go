package main

import (
	"github.com/spf13/cobra"

	"moshpit/internal/analysis"
	"moshpit/internal/report"
)

func newFollowersCommand(ctx *commandContext) *cobra.Command {
	var listPath string

	cmd := &cobra.Command{
		Use:   "followers [artist...]",
		Short: "Compare Spotify followers against monthly listeners for an artist set",
		RunE: func(cmd *cobra.Command, args []string) error {
			artists, err := resolveArtists(args, listPath)
			if err != nil {
				return err
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				profiles, err := gatherArtistProfiles(cmd.Context(), env, artists)
				if err != nil {
					return err
				}
				rows, err := analysis.CompareFollowersListeners(profiles)
				if err != nil {
					return err
				}

				tbl := report.Table{
					Title:   "Followers versus monthly listeners",
					Headers: []string{"Artist", "Followers", "Monthly listeners", "Pushedness"},
					Aligns: []report.Alignment{
						report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight,
					},
				}
				for _, row := range rows {
					tbl.AddRow(
						row.Artist,
						report.Int64(row.Followers),
						report.Int64(row.Listeners),
						report.Float(row.Pushedness, 2),
					)
				}
				return ctx.emit(cmd, tbl, rows)
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "artists", "", "File with artist names (CSV or one per line)")
	return cmd
}
