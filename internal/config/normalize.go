package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizePolling()
	c.normalizeCaptions()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizePolling() {
	if c.Polling.IntervalSeconds <= 0 {
		c.Polling.IntervalSeconds = defaultPollInterval
	}
	if c.Polling.MaxAttempts <= 0 {
		c.Polling.MaxAttempts = defaultPollMaxTries
	}
	if c.Polling.SettleDelayMS < 0 {
		c.Polling.SettleDelayMS = defaultSettleDelayMS
	}
}

func (c *Config) normalizeCaptions() {
	if strings.TrimSpace(c.Captions.CensorMarker) == "" {
		c.Captions.CensorMarker = defaultCensorMarker
	}
}
