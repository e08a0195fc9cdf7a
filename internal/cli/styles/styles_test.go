package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hostbridge/internal/app/messaging"
	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/cli/styles"
	"github.com/bnema/hostbridge/internal/domain/build"
	"github.com/bnema/hostbridge/internal/domain/entity"
)

func TestAboutRenderer_Render(t *testing.T) {
	out := styles.NewAboutRenderer(styles.NewTheme()).Render(build.Info{
		Version:   "v1.2.3",
		Commit:    "abc123",
		BuildDate: "2026-01-01",
		GoVersion: "go1.25",
	})

	require.Contains(t, out, "v1.2.3")
	require.Contains(t, out, "abc123")
	require.Contains(t, out, build.RepoURL())
}

func TestJournalRenderer_RenderEntries(t *testing.T) {
	r := styles.NewJournalRenderer(styles.NewTheme())

	empty := r.RenderEntries("/tmp/journal.sqlite", nil)
	assert.Contains(t, empty, "No reported errors")

	out := r.RenderEntries("/tmp/journal.sqlite", []port.JournalEntry{{
		Kind:       entity.KindUnrouted,
		Message:    "no handler for key \"ping\"",
		PanelID:    "0123456789abcdef",
		RecordedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	assert.Contains(t, out, string(entity.KindUnrouted))
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "ping")
}

func TestTrafficRenderer(t *testing.T) {
	r := styles.NewTrafficRenderer(styles.NewTheme())

	assert.Contains(t, r.Inbound(messaging.CatchAll, entity.Envelope(`{"a":1}`)), `{"a":1}`)
	assert.Contains(t, r.Inbound("ready", entity.Envelope(`{"type":"ready"}`)), "ready")
	assert.Contains(t, r.Outbound(entity.Envelope(`"hi"`)), `"hi"`)
	assert.Contains(t, r.Error(errors.New("boom")), "boom")
	assert.Contains(t, r.Stats(messaging.Stats{Dispatched: 3}), "dispatched=3")
}

func TestConfigRenderer(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderSchemaWritten("/tmp/config.schema.json"), "config.schema.json")
	assert.Contains(t, r.RenderConfig("/tmp/config.json", []byte(`{"engine":{}}`)), `"engine"`)
}
