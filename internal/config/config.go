// Package config provides configuration management for hostbridge with Viper integration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const envPrefix = "HOSTBRIDGE"

// sections are the top-level config keys. With AutomaticEnv, a variable
// named after a section hides every key below it.
var sections = []string{"logging", "bridge", "engine", "diagnostics"}

// Config represents the complete configuration for hostbridge.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" json:"logging"`
	Bridge      BridgeConfig      `mapstructure:"bridge" json:"bridge"`
	Engine      EngineConfig      `mapstructure:"engine" json:"engine"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" json:"diagnostics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=text,enum=json"`

	// File output
	EnableFileLog bool   `mapstructure:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" json:"log_dir"`
	MaxSize       int    `mapstructure:"max_size" json:"max_size" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge        int    `mapstructure:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" json:"compress"`
}

// BridgeConfig controls the host/page bridge.
type BridgeConfig struct {
	// Debug keeps native context menus (and the inspector) available.
	Debug bool `mapstructure:"debug" json:"debug"`
	// InitialURL is loaded when no URL is given on the command line.
	InitialURL string `mapstructure:"initial_url" json:"initial_url"`
	// Origin tags messages reaching the host from this panel.
	Origin string `mapstructure:"origin" json:"origin"`
	// RequestTimeout bounds correlated host-to-page requests.
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout"`
}

// EngineKind selects the rendering surface.
type EngineKind string

const (
	EngineHeadless EngineKind = "headless"
	EngineCDP      EngineKind = "cdp"
	EngineWebKit   EngineKind = "webkit"
)

// EngineConfig selects and tunes the browser engine.
type EngineConfig struct {
	Kind EngineKind `mapstructure:"kind" json:"kind" jsonschema:"enum=headless,enum=cdp,enum=webkit"`
	// ControlURL attaches to a running Chromium instead of launching one.
	ControlURL string `mapstructure:"control_url" json:"control_url"`
	// Headless launches Chromium without a window.
	Headless     bool `mapstructure:"headless" json:"headless"`
	WindowWidth  int  `mapstructure:"window_width" json:"window_width" jsonschema:"minimum=1"`
	WindowHeight int  `mapstructure:"window_height" json:"window_height" jsonschema:"minimum=1"`
}

// DiagnosticsConfig controls where bridge errors are reported.
type DiagnosticsConfig struct {
	JournalEnabled   bool          `mapstructure:"journal_enabled" json:"journal_enabled"`
	JournalPath      string        `mapstructure:"journal_path" json:"journal_path"`
	JournalRetention time.Duration `mapstructure:"journal_retention" json:"journal_retention"`
	// MetricsAddr enables the Prometheus listener when non-empty.
	MetricsAddr string `mapstructure:"metrics_addr" json:"metrics_addr"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager reading from configDir.
// An empty configDir uses the XDG config directory.
func NewManager(configDir string) (*Manager, error) {
	if configDir == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		configDir = dir
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"logging.level":            "LOG_LEVEL",
		"logging.format":           "LOG_FORMAT",
		"bridge.debug":             "DEBUG",
		"engine.kind":              "ENGINE_KIND",
		"engine.control_url":       "CDP_URL",
		"diagnostics.journal_path": "JOURNAL_PATH",
		"diagnostics.metrics_addr": "METRICS_ADDR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, envPrefix+"_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the config file (creating a default one if missing) and the environment.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := m.createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) decode() (*Config, error) {
	if err := checkShadowedSections(); err != nil {
		return nil, err
	}
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalize(config)
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func checkShadowedSections() error {
	for _, section := range sections {
		env := envPrefix + "_" + strings.ToUpper(section)
		if _, ok := os.LookupEnv(env); ok {
			return fmt.Errorf("environment variable %s hides the %q config section; set %s_<KEY> instead", env, section, env)
		}
	}
	return nil
}

func normalize(config *Config) {
	config.Engine.Kind = EngineKind(strings.ToLower(strings.TrimSpace(string(config.Engine.Kind))))
	if config.Engine.Kind == "" {
		config.Engine.Kind = EngineHeadless
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if config.Diagnostics.JournalEnabled && config.Diagnostics.JournalPath == "" {
		if path, err := GetJournalFile(); err == nil {
			config.Diagnostics.JournalPath = path
		}
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		if dir, err := GetLogDir(); err == nil {
			config.Logging.LogDir = dir
		}
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file and reloads it on change.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// OnConfigChange registers a callback invoked after every successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size", defaults.Logging.MaxSize)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)

	m.viper.SetDefault("bridge.debug", defaults.Bridge.Debug)
	m.viper.SetDefault("bridge.initial_url", defaults.Bridge.InitialURL)
	m.viper.SetDefault("bridge.origin", defaults.Bridge.Origin)
	m.viper.SetDefault("bridge.request_timeout", defaults.Bridge.RequestTimeout)

	m.viper.SetDefault("engine.kind", string(defaults.Engine.Kind))
	m.viper.SetDefault("engine.control_url", defaults.Engine.ControlURL)
	m.viper.SetDefault("engine.headless", defaults.Engine.Headless)
	m.viper.SetDefault("engine.window_width", defaults.Engine.WindowWidth)
	m.viper.SetDefault("engine.window_height", defaults.Engine.WindowHeight)

	m.viper.SetDefault("diagnostics.journal_enabled", defaults.Diagnostics.JournalEnabled)
	m.viper.SetDefault("diagnostics.journal_path", defaults.Diagnostics.JournalPath)
	m.viper.SetDefault("diagnostics.journal_retention", defaults.Diagnostics.JournalRetention)
	m.viper.SetDefault("diagnostics.metrics_addr", defaults.Diagnostics.MetricsAddr)
}

// createDefaultConfig writes the defaults (and their schema) to the config directory.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	configFile := filepath.Join(m.configDir, configFileName)
	if err := os.WriteFile(configFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := GenerateSchemaFile(m.configDir); err != nil {
		return err
	}

	m.viper.SetConfigFile(configFile)
	return m.viper.ReadInConfig()
}

// ConfigFile returns the path of the file the configuration was read from.
func (m *Manager) ConfigFile() string {
	return m.viper.ConfigFileUsed()
}
