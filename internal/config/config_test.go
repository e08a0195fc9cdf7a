package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	return m, dir
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	m, dir := newTestManager(t)

	require.NoError(t, m.Load())

	assert.FileExists(t, filepath.Join(dir, configFileName))
	assert.FileExists(t, filepath.Join(dir, schemaFileName))

	cfg := m.Get()
	assert.Equal(t, EngineHeadless, cfg.Engine.Kind)
	assert.False(t, cfg.Bridge.Debug)
	assert.Equal(t, defaultRequestTimeout, cfg.Bridge.RequestTimeout)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_STATE_HOME"), appName, journalName), cfg.Diagnostics.JournalPath)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	m, _ := newTestManager(t)
	t.Setenv("HOSTBRIDGE_ENGINE_KIND", "CDP")
	t.Setenv("HOSTBRIDGE_DEBUG", "true")
	t.Setenv("HOSTBRIDGE_CDP_URL", "ws://127.0.0.1:9222/devtools/browser/x")

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, EngineCDP, cfg.Engine.Kind)
	assert.True(t, cfg.Bridge.Debug)
	assert.Equal(t, "ws://127.0.0.1:9222/devtools/browser/x", cfg.Engine.ControlURL)

	// the rest of the engine section keeps its defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Engine.WindowWidth, cfg.Engine.WindowWidth)
	assert.Equal(t, defaults.Engine.WindowHeight, cfg.Engine.WindowHeight)
	assert.Equal(t, defaults.Engine.Headless, cfg.Engine.Headless)
}

func TestLoad_SectionNamedVariableIsRejected(t *testing.T) {
	m, _ := newTestManager(t)
	t.Setenv("HOSTBRIDGE_ENGINE", "cdp")

	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOSTBRIDGE_ENGINE")
	assert.Contains(t, err.Error(), `"engine"`)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	m, dir := newTestManager(t)
	content := `{"bridge":{"origin":"settings-panel","debug":true},"engine":{"kind":"webkit"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), filePerm))

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "settings-panel", cfg.Bridge.Origin)
	assert.True(t, cfg.Bridge.Debug)
	assert.Equal(t, EngineWebKit, cfg.Engine.Kind)
	assert.Equal(t, defaultWindowWidth, cfg.Engine.WindowWidth)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	m, dir := newTestManager(t)
	content := `{"engine":{"kind":"gecko"},"diagnostics":{"metrics_addr":"nope"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), filePerm))

	err := m.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.kind")
	assert.Contains(t, err.Error(), "diagnostics.metrics_addr")
}

func TestGet_ReturnsDefaultsBeforeLoad(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, DefaultConfig(), m.Get())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "negative timeout", mutate: func(c *Config) { c.Bridge.RequestTimeout = -time.Second }, wantErr: "bridge.request_timeout"},
		{name: "relative control url", mutate: func(c *Config) { c.Engine.ControlURL = "localhost" }, wantErr: "engine.control_url"},
		{name: "zero window", mutate: func(c *Config) { c.Engine.WindowWidth = 0 }, wantErr: "engine.window_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"engine"`)
	assert.Contains(t, string(data), `"webkit"`)
	assert.Contains(t, string(data), "hostbridge configuration")
}
