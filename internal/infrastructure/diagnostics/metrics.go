package diagnostics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Metrics counts bridge traffic and errors.
type Metrics struct {
	errors   *prometheus.CounterVec
	messages *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewMetrics registers the bridge collectors on reg.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostbridge_errors_total",
				Help: "Bridge errors reported, by kind",
			},
			[]string{"kind"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostbridge_messages_total",
				Help: "Messages crossing the bridge, by outcome",
			},
			[]string{"outcome"},
		),
		gatherer: reg,
	}
	for _, c := range []prometheus.Collector{m.errors, m.messages} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Report implements port.DiagnosticsReporter.
func (m *Metrics) Report(_ context.Context, err error) {
	if err == nil {
		return
	}
	m.errors.WithLabelValues(string(entity.KindOf(err))).Inc()
}

// ObserveDispatch implements port.DispatchObserver. Routing keys are not
// used as labels since pages choose them freely.
func (m *Metrics) ObserveDispatch(_ string, outcome entity.DispatchOutcome) {
	m.messages.WithLabelValues(string(outcome)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics listener started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
