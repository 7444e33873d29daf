package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is structurally usable. Credentials are
// checked by the clients that need them so cache-only commands still run.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateMining(); err != nil {
		return err
	}
	if err := c.validatePushedness(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateScrape() error {
	if err := ensurePositiveMap(map[string]int{
		"scrape.request_delay_ms": c.Scrape.RequestDelayMS,
		"scrape.timeout_seconds":  c.Scrape.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Scrape.MaxRetries < 0 {
		return errors.New("scrape.max_retries must not be negative")
	}
	return nil
}

func (c *Config) validateMining() error {
	if err := ensurePositiveMap(map[string]int{
		"mining.min_support_lineups": c.Mining.MinSupportLineups,
		"mining.max_rule_length":     c.Mining.MaxRuleLength,
	}); err != nil {
		return err
	}
	if c.Mining.MaxRuleLength < 2 {
		return errors.New("mining.max_rule_length must be at least 2 to form rules")
	}
	if c.Mining.MinLift <= 0 {
		return errors.New("mining.min_lift must be positive")
	}
	return nil
}

func (c *Config) validatePushedness() error {
	if c.Pushedness.MinListeners < 0 {
		return errors.New("pushedness.min_listeners must not be negative")
	}
	if c.Pushedness.OutlierQuantile < 0 || c.Pushedness.OutlierQuantile >= 0.5 {
		return errors.New("pushedness.outlier_quantile must be in [0, 0.5)")
	}
	if c.Pushedness.TopArtists <= 0 {
		return errors.New("pushedness.top_artists must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
