package main

import (
	"context"
	"errors"

	"moshpit/internal/dataset"
	"moshpit/internal/lastfm"
	"moshpit/internal/logging"
	"moshpit/internal/spotify"
)

// gatherTagProfiles builds artist profiles for the top artists of each
// Last.fm tag: Last.fm listener counts plus Spotify followers, popularity,
// and scraped monthly listeners. Artists that fail on either platform are
// logged and skipped; one missing band should not sink a whole genre.
func gatherTagProfiles(ctx context.Context, env *environment, tags []string, perTag int) ([]dataset.ArtistProfile, error) {
	if len(tags) == 0 {
		return nil, errors.New("no tags given; pass --tags with at least one genre tag")
	}

	lastfmClient, err := lastfm.New(env.cfg.LastFM, env.fetcher, env.logger)
	if err != nil {
		return nil, err
	}
	spotifyClient, err := spotify.New(env.cfg.Spotify, env.fetcher, env.logger)
	if err != nil {
		return nil, err
	}
	logger := logging.NewComponentLogger(env.logger, "profiles")

	var profiles []dataset.ArtistProfile
	for _, tag := range tags {
		top, err := lastfmClient.TagTopArtists(ctx, tag, perTag)
		if err != nil {
			return nil, err
		}

		for _, tagArtist := range top {
			profile := dataset.ArtistProfile{
				Artist:    tagArtist.Name,
				Genre:     tag,
				GenreRank: tagArtist.Rank,
			}

			if stats, err := lastfmClient.ArtistInfo(ctx, tagArtist.Name); err != nil {
				logger.Warn("lastfm artist info failed", logging.Args(
					logging.String("artist", tagArtist.Name),
					logging.Error(err))...)
			} else {
				profile.LastFMListeners = stats.Listeners
			}

			spotifyArtist, err := spotifyClient.SearchArtist(ctx, tagArtist.Name)
			if err != nil {
				logger.Warn("spotify search failed", logging.Args(
					logging.String("artist", tagArtist.Name),
					logging.Error(err))...)
				profiles = append(profiles, profile)
				continue
			}
			profile.SpotifyFollowers = spotifyArtist.Followers
			profile.SpotifyPopularity = spotifyArtist.Popularity

			if listeners, err := spotifyClient.MonthlyListeners(ctx, spotifyArtist.ID); err != nil {
				logger.Warn("monthly listeners failed", logging.Args(
					logging.String("artist", tagArtist.Name),
					logging.Error(err))...)
			} else {
				profile.SpotifyListeners = listeners
			}

			profiles = append(profiles, profile)
		}
	}
	if len(profiles) == 0 {
		return nil, errors.New("no artist profiles collected")
	}
	return profiles, nil
}

// gatherArtistProfiles builds Spotify-only profiles for a fixed artist list.
func gatherArtistProfiles(ctx context.Context, env *environment, artists []string) ([]dataset.ArtistProfile, error) {
	spotifyClient, err := spotify.New(env.cfg.Spotify, env.fetcher, env.logger)
	if err != nil {
		return nil, err
	}
	logger := logging.NewComponentLogger(env.logger, "profiles")

	var profiles []dataset.ArtistProfile
	for _, artist := range artists {
		spotifyArtist, err := spotifyClient.SearchArtist(ctx, artist)
		if err != nil {
			logger.Warn("spotify search failed", logging.Args(
				logging.String("artist", artist),
				logging.Error(err))...)
			continue
		}

		profile := dataset.ArtistProfile{
			Artist:            artist,
			SpotifyFollowers:  spotifyArtist.Followers,
			SpotifyPopularity: spotifyArtist.Popularity,
		}
		if listeners, err := spotifyClient.MonthlyListeners(ctx, spotifyArtist.ID); err != nil {
			logger.Warn("monthly listeners failed", logging.Args(
				logging.String("artist", artist),
				logging.Error(err))...)
		} else {
			profile.SpotifyListeners = listeners
		}
		profiles = append(profiles, profile)
	}
	if len(profiles) == 0 {
		return nil, errors.New("no artist profiles collected")
	}
	return profiles, nil
}
