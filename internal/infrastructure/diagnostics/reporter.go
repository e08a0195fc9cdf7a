// Package diagnostics implements the sinks bridge errors are reported to:
// structured logs, Prometheus counters and the SQLite journal.
package diagnostics

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

// LogReporter writes every report to the context logger.
type LogReporter struct{}

// Report implements port.DiagnosticsReporter.
func (LogReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	kind := entity.KindOf(err)
	event := logEvent(logging.FromContext(ctx), kind)
	event = event.Str("kind", string(kind)).Err(err)

	var malformed *entity.MalformedMessageError
	if errors.As(err, &malformed) {
		event = event.Str("payload", malformed.Payload)
	}
	var unrouted *entity.UnroutedMessageError
	if errors.As(err, &unrouted) {
		event = event.Str("key", unrouted.Key).Str("origin", string(unrouted.Origin))
	}
	event.Msg("bridge error")
}

// Malformed and unrouted traffic is the page's fault and noisy; the rest
// points at host bugs.
func logEvent(log *zerolog.Logger, kind entity.ErrorKind) *zerolog.Event {
	switch kind {
	case entity.KindMalformed, entity.KindUnrouted:
		return log.Warn()
	default:
		return log.Error()
	}
}

// Fanout forwards each report to every reporter in order.
type Fanout []port.DiagnosticsReporter

// Report implements port.DiagnosticsReporter.
func (f Fanout) Report(ctx context.Context, err error) {
	for _, r := range f {
		if r != nil {
			r.Report(ctx, err)
		}
	}
}
