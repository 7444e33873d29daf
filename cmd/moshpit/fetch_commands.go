package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"moshpit/internal/concertsmetal"
	"moshpit/internal/dataset"
	"moshpit/internal/genius"
	"moshpit/internal/logging"
	"moshpit/internal/setlistfm"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Collect data from APIs and scraped sites",
	}

	fetchCmd.AddCommand(newFetchFestivalsCommand(ctx))
	fetchCmd.AddCommand(newFetchSetlistsCommand(ctx))
	fetchCmd.AddCommand(newFetchLyricsCommand(ctx))

	return fetchCmd
}

func newFetchFestivalsCommand(ctx *commandContext) *cobra.Command {
	var years []int
	var skipLineups bool

	cmd := &cobra.Command{
		Use:   "festivals",
		Short: "Scrape festival listings and lineups from concerts-metal.com",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnvironment(cmd, func(env *environment) error {
				scraper, err := concertsmetal.New(env.cfg.ConcertsMetal, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				logger := logging.NewComponentLogger(env.logger, "cli")
				out := cmd.OutOrStdout()

				var festivals []dataset.Festival
				for _, year := range years {
					found, err := scraper.FestivalsForYear(cmd.Context(), year)
					if err != nil {
						return fmt.Errorf("scrape festivals for %d: %w", year, err)
					}
					fmt.Fprintf(out, "Found %s for %d\n", pluralize(len(found), "festival"), year)

					for i := range found {
						if skipLineups || found[i].URL == "" {
							continue
						}
						lineup, err := scraper.Lineup(cmd.Context(), found[i].URL)
						if err != nil {
							logger.Warn("lineup scrape failed", logging.Args(
								logging.String("festival", found[i].Name),
								logging.Error(err))...)
							continue
						}
						found[i].Artists = lineup
					}
					festivals = append(festivals, found...)
				}

				if err := dataset.SaveFestivals(env.cfg.Paths.DataDir, festivals); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s to %s\n",
					pluralize(len(festivals), "festival"),
					filepath.Join(env.cfg.Paths.DataDir, dataset.FestivalsFile))
				return nil
			})
		},
	}

	cmd.Flags().IntSliceVar(&years, "years", []int{time.Now().Year()}, "Festival years to scrape")
	cmd.Flags().BoolVar(&skipLineups, "skip-lineups", false, "Only scrape the festival list, not per-festival lineups")
	return cmd
}

func newFetchSetlistsCommand(ctx *commandContext) *cobra.Command {
	var listPath string
	var yearsBack int

	cmd := &cobra.Command{
		Use:   "setlists [artist...]",
		Short: "Fetch recent concert setlists from Setlist.fm",
		RunE: func(cmd *cobra.Command, args []string) error {
			artists, err := resolveArtists(args, listPath)
			if err != nil {
				return err
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				client, err := setlistfm.New(env.cfg.SetlistFM, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				logger := logging.NewComponentLogger(env.logger, "cli")
				out := cmd.OutOrStdout()

				var setlists []dataset.Setlist
				for _, artist := range artists {
					found, err := client.SetlistsSince(cmd.Context(), artist, yearsBack)
					if err != nil {
						logger.Warn("setlist fetch failed", logging.Args(
							logging.String("artist", artist),
							logging.Error(err))...)
						continue
					}
					fmt.Fprintf(out, "%s: %s\n", artist, pluralize(len(found), "show"))
					setlists = append(setlists, found...)
				}

				path := filepath.Join(env.cfg.Paths.DataDir, dataset.SetlistsFile)
				if err := dataset.SaveJSON(path, setlists); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s to %s\n", pluralize(len(setlists), "setlist"), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "artists", "", "File with artist names (CSV or one per line)")
	cmd.Flags().IntVar(&yearsBack, "years-back", 10, "How many years of shows to fetch")
	return cmd
}

func newFetchLyricsCommand(ctx *commandContext) *cobra.Command {
	var listPath string
	var maxSongs int

	cmd := &cobra.Command{
		Use:   "lyrics [artist...]",
		Short: "Fetch song lyrics from Genius",
		RunE: func(cmd *cobra.Command, args []string) error {
			artists, err := resolveArtists(args, listPath)
			if err != nil {
				return err
			}
			return ctx.withEnvironment(cmd, func(env *environment) error {
				client, err := genius.New(env.cfg.Genius, env.fetcher, env.logger)
				if err != nil {
					return err
				}
				logger := logging.NewComponentLogger(env.logger, "cli")
				out := cmd.OutOrStdout()

				var songs []dataset.Song
				for _, artist := range artists {
					found, err := client.SearchSongs(cmd.Context(), artist)
					if err != nil {
						logger.Warn("song search failed", logging.Args(
							logging.String("artist", artist),
							logging.Error(err))...)
						continue
					}
					if maxSongs > 0 && len(found) > maxSongs {
						found = found[:maxSongs]
					}

					fetched := 0
					for i := range found {
						lyrics, err := client.Lyrics(cmd.Context(), found[i].LyricsURL)
						if err != nil {
							logger.Warn("lyric fetch failed", logging.Args(
								logging.String("artist", artist),
								logging.String("title", found[i].Title),
								logging.Error(err))...)
							continue
						}
						found[i].Lyrics = lyrics
						songs = append(songs, found[i])
						fetched++
					}
					fmt.Fprintf(out, "%s: %s\n", artist, pluralize(fetched, "song"))
				}

				path := filepath.Join(env.cfg.Paths.DataDir, dataset.SongsFile)
				if err := dataset.SaveJSON(path, songs); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s to %s\n", pluralize(len(songs), "song"), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "artists", "", "File with artist names (CSV or one per line)")
	cmd.Flags().IntVar(&maxSongs, "max-songs", 0, "Cap on songs per artist (0 means all)")
	return cmd
}
