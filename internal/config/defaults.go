package config

const (
	defaultDataDir        = "~/.local/share/hushplay"
	defaultLogDir         = "~/.local/share/hushplay/logs"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultPollInterval   = 2
	defaultPollMaxTries   = 180
	defaultSettleDelayMS  = 400
	defaultSafeCap        = 90
	defaultProgressTickMS = 75
	defaultMinIncrement   = 0.1
	defaultMaxIncrement   = 4.0
	defaultDownloadLow    = 5
	defaultDownloadHigh   = 30
	defaultTranscribeLow  = 30
	defaultTranscribeHigh = 85
	defaultPositionTickMS = 50
	defaultSeekBack       = 2.0
	defaultMinMarkerWidth = 0.5
	defaultCensorMarker   = "(bleep)"
	defaultCacheMaxAge    = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Polling: Polling{
			IntervalSeconds: defaultPollInterval,
			MaxAttempts:     defaultPollMaxTries,
			SettleDelayMS:   defaultSettleDelayMS,
		},
		Progress: Progress{
			SafeCap:            defaultSafeCap,
			TickMS:             defaultProgressTickMS,
			MinIncrement:       defaultMinIncrement,
			MaxIncrement:       defaultMaxIncrement,
			DownloadBandLow:    defaultDownloadLow,
			DownloadBandHigh:   defaultDownloadHigh,
			TranscribeBandLow:  defaultTranscribeLow,
			TranscribeBandHigh: defaultTranscribeHigh,
		},
		Engine: Engine{
			PositionTickMS:    defaultPositionTickMS,
			SeekBackSeconds:   defaultSeekBack,
			MinMarkerWidthPct: defaultMinMarkerWidth,
		},
		Captions: Captions{
			CensorMarker: defaultCensorMarker,
		},
		Cache: Cache{
			MaxAgeDays: defaultCacheMaxAge,
		},
	}
}
