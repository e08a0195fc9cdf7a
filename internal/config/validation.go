package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate checks a configuration for out-of-range or unknown values.
func Validate(config *Config) error {
	return validateConfig(config)
}

func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "text", "json", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, text, json (got: %s)", config.Logging.Format))
	}
	if config.Logging.MaxSize < 0 {
		validationErrors = append(validationErrors, "logging.max_size must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}

	if config.Bridge.RequestTimeout < 0 {
		validationErrors = append(validationErrors, "bridge.request_timeout must be non-negative")
	}

	switch config.Engine.Kind {
	case EngineHeadless, EngineCDP, EngineWebKit:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("engine.kind must be one of: headless, cdp, webkit (got: %s)", config.Engine.Kind))
	}
	if config.Engine.ControlURL != "" {
		if u, err := url.Parse(config.Engine.ControlURL); err != nil || u.Scheme == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("engine.control_url must be an absolute URL (got: %s)", config.Engine.ControlURL))
		}
	}
	if config.Engine.WindowWidth < 1 || config.Engine.WindowHeight < 1 {
		validationErrors = append(validationErrors, "engine.window_width and engine.window_height must be positive")
	}

	if config.Diagnostics.JournalRetention < 0 {
		validationErrors = append(validationErrors, "diagnostics.journal_retention must be non-negative")
	}
	if addr := config.Diagnostics.MetricsAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("diagnostics.metrics_addr must be host:port (got: %s)", addr))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
