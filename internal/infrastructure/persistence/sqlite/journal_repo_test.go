package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/infrastructure/persistence/sqlite"
)

func TestJournal_RecordRecentPurge(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.sqlite"))
	journal := sqlite.NewJournal(lazy)
	defer journal.Close()

	assert.False(t, lazy.IsInitialized())

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, journal.Record(ctx, port.JournalEntry{
		Kind: entity.KindMalformed, Message: "malformed message: eof", PanelID: "p1", RecordedAt: base,
	}))
	require.NoError(t, journal.Record(ctx, port.JournalEntry{
		Kind: entity.KindUnrouted, Message: `no handler for routing key "x"`, RecordedAt: base.Add(time.Hour),
	}))
	require.NoError(t, journal.Record(ctx, port.JournalEntry{
		Kind: entity.KindHandler, Message: "handler failed", RecordedAt: base.Add(2 * time.Hour),
	}))
	assert.True(t, lazy.IsInitialized())

	entries, err := journal.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.KindHandler, entries[0].Kind)
	assert.Equal(t, entity.KindUnrouted, entries[1].Kind)
	assert.True(t, entries[0].RecordedAt.Equal(base.Add(2*time.Hour)))

	purged, err := journal.Purge(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	entries, err = journal.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "handler failed", entries[0].Message)
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "journal.sqlite")

	first := sqlite.NewJournal(sqlite.NewLazyDB(path))
	require.NoError(t, first.Record(ctx, port.JournalEntry{Kind: entity.KindInjection, Message: "rejected"}))
	require.NoError(t, first.Close())

	second := sqlite.NewJournal(sqlite.NewLazyDB(path))
	defer second.Close()
	entries, err := second.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KindInjection, entries[0].Kind)
	assert.False(t, entries[0].RecordedAt.IsZero())
}
