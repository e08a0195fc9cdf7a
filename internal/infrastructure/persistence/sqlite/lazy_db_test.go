package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hostbridge/internal/infrastructure/persistence/sqlite"
)

func newLazyJournalDB(t *testing.T) *sqlite.LazyDB {
	t.Helper()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })
	return lazy
}

func TestLazyDB_OpensOnlyWhenAsked(t *testing.T) {
	lazy := newLazyJournalDB(t)
	assert.False(t, lazy.IsInitialized())
	assert.Equal(t, "journal.sqlite", filepath.Base(lazy.Path()))

	_, err := lazy.DB(testCtx())
	require.NoError(t, err)
	assert.True(t, lazy.IsInitialized())
}

func TestLazyDB_AppliesJournalSchema(t *testing.T) {
	ctx := testCtx()
	db, err := newLazyJournalDB(t).DB(ctx)
	require.NoError(t, err)

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'diagnostics_journal'",
	).Scan(&name)
	require.NoError(t, err)

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Positive(t, version)

	// a second run is a no-op
	require.NoError(t, sqlite.RunMigrations(ctx, db))
	again, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestLazyDB_SharesOneConnectionAcrossGoroutines(t *testing.T) {
	lazy := newLazyJournalDB(t)

	const workers = 8
	dbs := make([]*sql.DB, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := lazy.DB(testCtx())
			assert.NoError(t, err)
			dbs[i] = db
		}()
	}
	wg.Wait()

	for _, db := range dbs[1:] {
		assert.Same(t, dbs[0], db)
	}
}

func TestLazyDB_Close(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, lazy.Close(), "closing an unopened database")

	_, err := lazy.DB(testCtx())
	require.NoError(t, err)
	require.NoError(t, lazy.Close())

	assert.False(t, lazy.IsInitialized())
	_, err = lazy.DB(testCtx())
	assert.Error(t, err)
}

func testCtx() context.Context {
	return context.Background()
}
