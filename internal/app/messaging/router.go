package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

// Stats is a snapshot of router counters.
type Stats struct {
	Dispatched    uint64
	Malformed     uint64
	Unrouted      uint64
	Failed        uint64
	Delivered     uint64
	Undeliverable uint64
}

// Option configures a Router.
type Option func(*Router)

// WithReporter sets the diagnostics sink. Without one, errors are logged.
func WithReporter(reporter port.DiagnosticsReporter) Option {
	return func(r *Router) {
		r.reporter = reporter
	}
}

// WithObserver adds a dispatch observer, typically metrics.
func WithObserver(observer port.DispatchObserver) Option {
	return func(r *Router) {
		if observer != nil {
			r.observers = append(r.observers, observer)
		}
	}
}

// Router dispatches inbound envelopes to handlers by routing key and
// serializes outbound values for the bound webview.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	target   Target

	reporter  port.DiagnosticsReporter
	observers []port.DispatchObserver

	dispatched    atomic.Uint64
	malformed     atomic.Uint64
	unrouted      atomic.Uint64
	failed        atomic.Uint64
	delivered     atomic.Uint64
	undeliverable atomic.Uint64
}

// NewRouter creates an empty router.
func NewRouter(opts ...Option) *Router {
	r := &Router{handlers: make(map[string]Handler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs h for key. CatchAll registers the fallback handler.
func (r *Router) Register(key string, h Handler) error {
	if h == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %q", entity.ErrDuplicateHandler, key)
	}
	r.handlers[key] = h
	return nil
}

// RegisterFunc installs fn for key.
func (r *Router) RegisterFunc(key string, fn func(ctx context.Context, msg Inbound) error) error {
	if fn == nil {
		return errors.New("message handler cannot be nil")
	}
	return r.Register(key, HandlerFunc(fn))
}

// Unregister removes the handler for key and reports whether one existed.
func (r *Router) Unregister(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.handlers[key]
	delete(r.handlers, key)
	return exists
}

// Bind attaches the router to the webview that executes deliveries.
// A router serves a single webview for its whole life.
func (r *Router) Bind(target Target) error {
	if target == nil {
		return errors.New("bind target cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.target != nil && r.target != target {
		return entity.ErrRouterBound
	}
	r.target = target
	return nil
}

// Handle parses raw page text and dispatches it. Every failure is reported
// to diagnostics and returned; Handle itself never panics.
func (r *Router) Handle(ctx context.Context, raw string, origin entity.Origin) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &entity.HandlerError{Err: fmt.Errorf("panic during dispatch: %v", rec)}
			logging.FromContext(ctx).Error().Interface("panic", rec).Msg("router: recovered panic outside handler")
		}
	}()

	env, err := entity.Unmarshal(raw)
	if err != nil {
		r.malformed.Add(1)
		r.observe("", entity.OutcomeMalformed)
		r.report(ctx, err)
		return err
	}

	key := env.RoutingKey()
	h, routedKey, ok := r.lookup(key)
	if !ok {
		r.unrouted.Add(1)
		r.observe(key, entity.OutcomeUnrouted)
		err := &entity.UnroutedMessageError{Key: key, Origin: origin}
		r.report(ctx, err)
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("key", key).
		Str("route", routedKey).
		Str("origin", string(origin)).
		Msg("dispatching message")

	if err := invoke(ctx, h, Inbound{Key: key, Envelope: env, Origin: origin}); err != nil {
		r.failed.Add(1)
		r.observe(key, entity.OutcomeFailed)
		herr := &entity.HandlerError{Key: key, Err: err}
		r.report(ctx, herr)
		return herr
	}

	r.dispatched.Add(1)
	r.observe(key, entity.OutcomeDispatched)
	return nil
}

// lookup resolves the exact-key handler first and the catch-all second.
func (r *Router) lookup(key string) (Handler, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key != CatchAll {
		if h, ok := r.handlers[key]; ok {
			return h, key, true
		}
	}
	h, ok := r.handlers[CatchAll]
	return h, CatchAll, ok
}

func invoke(ctx context.Context, h Handler, msg Inbound) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return h.Handle(ctx, msg)
}

// Deliver serializes v and posts it to the page of the bound webview.
func (r *Router) Deliver(ctx context.Context, v any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := entity.Marshal(v)
	if err != nil {
		r.undeliverable.Add(1)
		r.observe("", entity.OutcomeUndeliverable)
		r.report(ctx, err)
		return err
	}

	r.mu.RLock()
	target := r.target
	r.mu.RUnlock()
	if target == nil {
		return entity.ErrRouterUnbound
	}

	if err := target.RunScript(ctx, DeliveryScript(env)); err != nil {
		r.undeliverable.Add(1)
		r.observe("", entity.OutcomeUndeliverable)
		if entity.IsDisposed(err) {
			return err
		}
		derr := &entity.DeliveryError{Err: err}
		r.report(ctx, derr)
		return derr
	}

	r.delivered.Add(1)
	r.observe(env.RoutingKey(), entity.OutcomeDelivered)
	return nil
}

// DeliveryScript returns the statement that posts env to the page's window.
func DeliveryScript(env entity.Envelope) string {
	return "window.postMessage(" + string(env) + ",'*');"
}

// Stats returns a snapshot of the router counters.
func (r *Router) Stats() Stats {
	return Stats{
		Dispatched:    r.dispatched.Load(),
		Malformed:     r.malformed.Load(),
		Unrouted:      r.unrouted.Load(),
		Failed:        r.failed.Load(),
		Delivered:     r.delivered.Load(),
		Undeliverable: r.undeliverable.Load(),
	}
}

func (r *Router) observe(key string, outcome entity.DispatchOutcome) {
	for _, o := range r.observers {
		o.ObserveDispatch(key, outcome)
	}
}

// report hands err to diagnostics. A misbehaving reporter cannot break dispatch.
func (r *Router) report(ctx context.Context, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.FromContext(ctx).Error().Interface("panic", rec).Msg("router: diagnostics reporter panicked")
		}
	}()

	if r.reporter != nil {
		r.reporter.Report(ctx, err)
		return
	}
	logging.FromContext(ctx).Warn().
		Str("kind", string(entity.KindOf(err))).
		Err(err).
		Msg("bridge error")
}
