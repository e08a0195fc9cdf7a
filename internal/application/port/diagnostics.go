package port

import (
	"context"
	"time"

	"github.com/bnema/hostbridge/internal/domain/entity"
)

//go:generate mockery --name=DiagnosticsReporter --output=mocks --outpkg=mocks --with-expecter

// DiagnosticsReporter receives every recoverable bridge error.
// Implementations must not block and must not panic.
type DiagnosticsReporter interface {
	Report(ctx context.Context, err error)
}

// DiagnosticsReporterFunc adapts a function to DiagnosticsReporter.
type DiagnosticsReporterFunc func(ctx context.Context, err error)

// Report calls f(ctx, err).
func (f DiagnosticsReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// JournalEntry is a persisted diagnostic report.
type JournalEntry struct {
	ID         int64
	Kind       entity.ErrorKind
	Message    string
	PanelID    string
	RecordedAt time.Time
}

// DiagnosticsJournal persists reported errors for later inspection.
type DiagnosticsJournal interface {
	Record(ctx context.Context, entry JournalEntry) error
	Recent(ctx context.Context, limit int) ([]JournalEntry, error)
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
	Close() error
}

// DispatchObserver is notified of every inbound dispatch and outbound delivery.
type DispatchObserver interface {
	ObserveDispatch(key string, outcome entity.DispatchOutcome)
}
