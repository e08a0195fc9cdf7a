package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

const defaultRecentLimit = 50

type journalRepo struct {
	provider port.DatabaseProvider
}

// NewJournal creates a SQLite-backed diagnostics journal. The database is
// opened through provider on first use.
func NewJournal(provider port.DatabaseProvider) port.DiagnosticsJournal {
	return &journalRepo{provider: provider}
}

func (r *journalRepo) Record(ctx context.Context, entry port.JournalEntry) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO diagnostics_journal (kind, message, panel_id, recorded_at) VALUES (?, ?, ?, ?)`,
		string(entry.Kind), entry.Message, entry.PanelID, entry.RecordedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record journal entry: %w", err)
	}
	return nil
}

func (r *journalRepo) Recent(ctx context.Context, limit int) ([]port.JournalEntry, error) {
	log := logging.FromContext(ctx)
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, kind, message, panel_id, recorded_at FROM diagnostics_journal
		 ORDER BY recorded_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []port.JournalEntry
	for rows.Next() {
		var (
			entry      port.JournalEntry
			kind       string
			recordedAt int64
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Message, &entry.PanelID, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Kind = entity.ErrorKind(kind)
		entry.RecordedAt = time.UnixMilli(recordedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(entries)).Msg("listed journal entries")
	return entries, nil
}

func (r *journalRepo) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM diagnostics_journal WHERE recorded_at < ?`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge journal: %w", err)
	}
	return res.RowsAffected()
}

func (r *journalRepo) Close() error {
	return r.provider.Close()
}
