package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateProgress(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}

func (c *Config) validateProgress() error {
	if c.Progress.SafeCap <= 0 || c.Progress.SafeCap >= 100 {
		return errors.New("progress.safe_cap must be between 0 and 100 exclusive")
	}
	if c.Progress.TickMS <= 0 {
		return errors.New("progress.tick_ms must be positive")
	}
	if c.Progress.MinIncrement <= 0 {
		return errors.New("progress.min_increment must be positive")
	}
	if c.Progress.MaxIncrement < c.Progress.MinIncrement {
		return errors.New("progress.max_increment must be at least min_increment")
	}
	bands := []struct {
		name      string
		low, high float64
	}{
		{"download", c.Progress.DownloadBandLow, c.Progress.DownloadBandHigh},
		{"transcribe", c.Progress.TranscribeBandLow, c.Progress.TranscribeBandHigh},
	}
	for _, band := range bands {
		if band.low < 0 || band.high > 100 || band.low >= band.high {
			return fmt.Errorf("progress.%s band must satisfy 0 <= low < high <= 100", band.name)
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.PositionTickMS <= 0 {
		return errors.New("engine.position_tick_ms must be positive")
	}
	if c.Engine.SeekBackSeconds < 0 {
		return errors.New("engine.seek_back_seconds must not be negative")
	}
	if c.Engine.MinMarkerWidthPct < 0 || c.Engine.MinMarkerWidthPct > 100 {
		return errors.New("engine.min_marker_width_pct must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MaxAgeDays < 0 {
		return errors.New("cache.max_age_days must not be negative")
	}
	return nil
}
