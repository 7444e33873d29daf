package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"moshpit/internal/config"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
	"moshpit/internal/webcache"
)

type commandContext struct {
	configFlag  *string
	jsonFlag    *bool
	csvFlag     *string
	refreshFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool, csvFlag *string, refreshFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		jsonFlag:    jsonFlag,
		csvFlag:     csvFlag,
		refreshFlag: refreshFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonEnabled() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) csvPath() string {
	if c.csvFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.csvFlag)
}

func (c *commandContext) forceRefresh() bool {
	return c.refreshFlag != nil && *c.refreshFlag
}

// environment bundles everything a data command needs: config, logger, the
// response cache behind its lock, and the cached fetcher.
type environment struct {
	cfg     *config.Config
	logger  *slog.Logger
	cache   *webcache.Cache
	fetcher *fetch.Client
}

// withEnvironment acquires the data-directory lock, opens the response cache,
// runs fn, and tears everything down again. Concurrent runs would race on the
// cache database and hammer the scraped sites, so the lock is not optional.
func (c *commandContext) withEnvironment(cmd *cobra.Command, fn func(*environment) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewForPaths(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", cfg.LockPath(), err)
	}
	if !locked {
		return errors.New("another moshpit instance is running")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	cache, err := webcache.Open(cfg.CacheDBPath())
	if err != nil {
		return fmt.Errorf("open response cache: %w", err)
	}
	defer cache.Close()

	fetcher := fetch.New(cache, cfg.Scrape, logger, fetch.WithForceRefresh(c.forceRefresh()))

	return fn(&environment{
		cfg:     cfg,
		logger:  logger,
		cache:   cache,
		fetcher: fetcher,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
