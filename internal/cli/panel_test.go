package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hostbridge/assets"
	"github.com/bnema/hostbridge/internal/cli/styles"
	"github.com/bnema/hostbridge/internal/config"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/infrastructure/jsruntime"
)

func newTestApp(t *testing.T, journal bool) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Diagnostics.JournalEnabled = journal
	cfg.Diagnostics.JournalPath = filepath.Join(t.TempDir(), "journal.sqlite")

	out := &bytes.Buffer{}
	app := &App{
		Config: cfg,
		Theme:  styles.NewTheme(),
		Out:    out,
		ctx:    context.Background(),
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, out
}

func echoSurface() *jsruntime.Surface {
	return jsruntime.New(context.Background(), jsruntime.StaticPages{
		assets.EchoPageURL: jsruntime.Bundle(assets.BridgeClientScript, assets.EchoPageScript),
	})
}

func TestPanel_EchoPageRoundTrip(t *testing.T) {
	app, out := newTestApp(t, false)
	reg := prometheus.NewRegistry()

	var readyCalls int
	p, err := app.NewPanel(context.Background(), echoSurface(), PanelOptions{
		Registry: reg,
		OnReady:  func(context.Context, *Panel) { readyCalls++ },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	require.NoError(t, p.Load(assets.EchoPageURL))
	assert.Equal(t, entity.StateConnected, p.Controller.State())
	assert.Equal(t, 1, readyCalls)

	require.NoError(t, p.Ping(context.Background(), time.Second))
	assert.Zero(t, p.Requester.Pending())

	text := out.String()
	assert.Contains(t, text, `"type":"ready"`)
	assert.Contains(t, text, "hello from the host")
	assert.Contains(t, text, `"type":"echo"`)

	stats := p.Router.Stats()
	// ready, echo of the greeting, ping response
	assert.Equal(t, uint64(3), stats.Dispatched)
	assert.Equal(t, uint64(2), stats.Delivered)
	assert.Greater(t, testutil.CollectAndCount(reg), 0)
}

func TestPanel_HostInfoRequest(t *testing.T) {
	app, _ := newTestApp(t, false)
	app.BuildInfo.Version = "v9.9.9"
	surface := jsruntime.New(context.Background(), jsruntime.StaticPages{
		"app://info": jsruntime.Bundle(assets.BridgeClientScript, `
window.replies = [];
hostBridge.onMessage(function (m) { window.replies.push(m); });
hostBridge.postMessage({ method: "host.info", id: "r1" });
`),
	})

	p, err := app.NewPanel(context.Background(), surface, PanelOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, p.Load("app://info"))

	got, err := surface.Evaluate(`JSON.stringify(window.replies)`)
	require.NoError(t, err)
	assert.Contains(t, got, `"id":"r1"`)
	assert.Contains(t, got, `"version":"v9.9.9"`)
	assert.Contains(t, got, p.ID)
}

func TestPanel_MalformedMessageIsJournaled(t *testing.T) {
	app, _ := newTestApp(t, true)
	surface := echoSurface()

	p, err := app.NewPanel(context.Background(), surface, PanelOptions{})
	require.NoError(t, err)
	require.NoError(t, p.Load(assets.EchoPageURL))

	require.NoError(t, surface.ExecuteScript(context.Background(), `window.__hostQuery_1("{broken");`, ""))
	assert.Equal(t, uint64(1), p.Router.Stats().Malformed)

	// Close flushes the background journal writer.
	require.NoError(t, p.Close())

	entries, err := app.Journal().Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KindMalformed, entries[0].Kind)
	assert.Equal(t, p.ID, entries[0].PanelID)
}

type countingValue struct {
	marshals *int
}

func (v countingValue) MarshalJSON() ([]byte, error) {
	*v.marshals++
	return []byte(`{"type":"counted"}`), nil
}

func TestPanel_PostMarshalsOnce(t *testing.T) {
	app, out := newTestApp(t, false)
	p, err := app.NewPanel(context.Background(), echoSurface(), PanelOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, p.Load(assets.EchoPageURL))

	var marshals int
	require.NoError(t, p.Post(context.Background(), countingValue{marshals: &marshals}))

	assert.Equal(t, 1, marshals)
	assert.Contains(t, out.String(), `"type":"counted"`)
}

func TestPanel_CloseIsIdempotent(t *testing.T) {
	app, _ := newTestApp(t, true)
	p, err := app.NewPanel(context.Background(), echoSurface(), PanelOptions{})
	require.NoError(t, err)
	require.NoError(t, p.Load(assets.EchoPageURL))

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, entity.StateDisposed, p.Controller.State())
}

func TestApp_JournalDisabled(t *testing.T) {
	app, _ := newTestApp(t, false)
	assert.Nil(t, app.Journal())
}

func TestNewApp_CreatesConfig(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()

	app, err := NewApp(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.FileExists(t, filepath.Join(dir, "config.json"))
	assert.Equal(t, filepath.Join(dir, "config.json"), app.Manager.ConfigFile())
	assert.Equal(t, config.EngineHeadless, app.Config.Engine.Kind)
	assert.NotNil(t, app.Context())
}
