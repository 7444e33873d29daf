package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool
	var csvFlag string
	var refreshFlag bool

	ctx := newCommandContext(&configFlag, &jsonFlag, &csvFlag, &refreshFlag)

	rootCmd := &cobra.Command{
		Use:           "moshpit",
		Short:         "Metal festival and artist data analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit results as JSON")
	rootCmd.PersistentFlags().StringVar(&csvFlag, "csv", "", "Write results to a CSV file")
	rootCmd.PersistentFlags().BoolVar(&refreshFlag, "refresh", false, "Bypass the response cache")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newTwinsCommand(ctx))
	rootCmd.AddCommand(newSimilarityCommand(ctx))
	rootCmd.AddCommand(newPushednessCommand(ctx))
	rootCmd.AddCommand(newPopularityCommand(ctx))
	rootCmd.AddCommand(newFollowersCommand(ctx))
	rootCmd.AddCommand(newReleasesCommand(ctx))
	rootCmd.AddCommand(newToursCommand(ctx))
	rootCmd.AddCommand(newLyricsCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}
