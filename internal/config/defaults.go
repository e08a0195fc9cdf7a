package config

import "time"

// Default configuration constants
const (
	defaultMaxLogSizeMB  = 20
	defaultMaxBackups    = 3
	defaultMaxLogAgeDays = 7

	defaultRequestTimeout   = 10 * time.Second
	defaultJournalRetention = 30 * 24 * time.Hour

	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
)

// DefaultConfig returns the default configuration values for hostbridge.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    defaultMaxLogSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxLogAgeDays,
			Compress:   true,
		},
		Bridge: BridgeConfig{
			Debug:          false,
			InitialURL:     "hostbridge://echo",
			RequestTimeout: defaultRequestTimeout,
		},
		Engine: EngineConfig{
			Kind:         EngineHeadless,
			Headless:     true,
			WindowWidth:  defaultWindowWidth,
			WindowHeight: defaultWindowHeight,
		},
		Diagnostics: DiagnosticsConfig{
			JournalEnabled:   true,
			JournalRetention: defaultJournalRetention,
		},
	}
}
