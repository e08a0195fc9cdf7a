package diagnostics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

const journalQueueSize = 256

type journalItem struct {
	ctx   context.Context
	entry port.JournalEntry
}

// JournalReporter persists reports to a journal from a background writer so
// reporting never blocks the UI thread. Reports arriving while the queue
// is full are dropped and counted.
type JournalReporter struct {
	journal port.DiagnosticsJournal
	panelID string
	now     func() time.Time

	mu      sync.RWMutex
	closed  bool
	queue   chan journalItem
	done    chan struct{}
	dropped atomic.Uint64
}

// NewJournalReporter starts the writer goroutine. Call Close to flush it.
func NewJournalReporter(journal port.DiagnosticsJournal, panelID string) *JournalReporter {
	r := &JournalReporter{
		journal: journal,
		panelID: panelID,
		now:     time.Now,
		queue:   make(chan journalItem, journalQueueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Report implements port.DiagnosticsReporter.
func (r *JournalReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	item := journalItem{
		ctx: context.WithoutCancel(ctx),
		entry: port.JournalEntry{
			Kind:       entity.KindOf(err),
			Message:    err.Error(),
			PanelID:    r.panelID,
			RecordedAt: r.now(),
		},
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- item:
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns how many reports were discarded because the queue was full.
func (r *JournalReporter) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *JournalReporter) run() {
	defer close(r.done)
	for item := range r.queue {
		if err := r.journal.Record(item.ctx, item.entry); err != nil {
			logging.FromContext(item.ctx).Warn().Err(err).Msg("failed to record diagnostics journal entry")
		}
	}
}

// Close stops accepting reports and waits until queued ones are written.
func (r *JournalReporter) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	<-r.done
}
