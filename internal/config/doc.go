// Package config loads and validates the moshpit configuration file.
//
// Configuration lives in a single TOML file holding API credentials, data and
// cache paths, scrape pacing, and default mining parameters. Load applies
// repository defaults first, then the file, then normalizes paths and
// validates the result. Credentials are only required by the clients that use
// them, so cache-only commands work with an empty file.
package config
