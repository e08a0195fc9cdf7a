package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Timeline records how long a panel takes to come up, from engine start to
// the page's first message. It only logs when the context logger is at
// debug level or below; a nil Timeline is a no-op.
type Timeline struct {
	mu       sync.Mutex
	t0       time.Time
	marks    []Mark
	logger   *zerolog.Logger
	finished bool
}

// Mark is one checkpoint on a Timeline.
type Mark struct {
	Name    string
	Elapsed time.Duration // since t0
	Delta   time.Duration // since the previous mark
}

// NewTimeline starts a timeline that logs to the context logger.
// It returns nil when debug logging is off.
func NewTimeline(ctx context.Context) *Timeline {
	log := FromContext(ctx)
	if log.GetLevel() > zerolog.DebugLevel || zerolog.GlobalLevel() > zerolog.DebugLevel {
		return nil
	}
	return &Timeline{t0: time.Now(), logger: log}
}

// Mark records a checkpoint. Marks after Finish are ignored.
func (t *Timeline) Mark(name string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}

	elapsed := time.Since(t.t0)
	var delta time.Duration
	if n := len(t.marks); n > 0 {
		delta = elapsed - t.marks[n-1].Elapsed
	}
	m := Mark{Name: name, Elapsed: elapsed, Delta: delta}
	t.marks = append(t.marks, m)

	t.logger.Debug().
		Str("mark", m.Name).
		Int64("t_ms", m.Elapsed.Milliseconds()).
		Int64("delta_ms", m.Delta.Milliseconds()).
		Msgf("panel timeline: %s (T+%dms)", m.Name, m.Elapsed.Milliseconds())
}

// Finish closes the timeline and logs a one-line summary. Safe to call more
// than once.
func (t *Timeline) Finish() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}
	t.finished = true

	parts := make([]string, 0, len(t.marks))
	for _, m := range t.marks {
		parts = append(parts, fmt.Sprintf("%s:%d", m.Name, m.Elapsed.Milliseconds()))
	}
	t.logger.Info().
		Int64("total_ms", time.Since(t.t0).Milliseconds()).
		Str("marks", strings.Join(parts, ",")).
		Msg("panel timeline complete")
}

// Marks returns a copy of the recorded checkpoints.
func (t *Timeline) Marks() []Mark {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Mark(nil), t.marks...)
}
