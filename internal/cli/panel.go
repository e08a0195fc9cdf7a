package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/hostbridge/internal/app/messaging"
	"github.com/bnema/hostbridge/internal/app/webview"
	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/cli/styles"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/infrastructure/diagnostics"
	"github.com/bnema/hostbridge/internal/logging"
)

// Keys the built-in echo page speaks.
const (
	keyReady       = "ready"
	keyEcho        = "echo"
	methodPing     = "ping"
	methodHostInfo = "host.info"
)

// PanelOptions tunes NewPanel.
type PanelOptions struct {
	// Registry receives the bridge metrics. A private one is used when nil.
	Registry *prometheus.Registry
	// OnReady runs on the surface thread when the page announces itself.
	OnReady func(ctx context.Context, p *Panel)
}

// Panel is one bridged surface with its diagnostics sinks.
type Panel struct {
	ID         string
	Router     *messaging.Router
	Requester  *messaging.Requester
	Controller *webview.Controller
	Metrics    *diagnostics.Metrics

	ctx     context.Context
	journal *diagnostics.JournalReporter
	traffic *styles.TrafficRenderer
	onReady func(ctx context.Context, p *Panel)

	outMu sync.Mutex
	out   io.Writer

	closeOnce sync.Once
	closeErr  error
}

// NewPanel builds the router, diagnostics and controller for surface.
func (a *App) NewPanel(ctx context.Context, surface port.Surface, opts PanelOptions) (*Panel, error) {
	p := &Panel{
		ID:      uuid.NewString(),
		traffic: styles.NewTrafficRenderer(a.Theme),
		onReady: opts.OnReady,
		out:     a.Out,
	}
	p.ctx = logging.WithPanelID(logging.WithComponent(ctx, "panel"), p.ID)

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := diagnostics.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	p.Metrics = metrics

	reporters := diagnostics.Fanout{diagnostics.LogReporter{}, metrics}
	if journal := a.Journal(); journal != nil {
		p.journal = diagnostics.NewJournalReporter(journal, p.ID)
		reporters = append(reporters, p.journal)
	}

	p.Router = messaging.NewRouter(
		messaging.WithReporter(reporters),
		messaging.WithObserver(metrics),
	)
	if p.Requester, err = messaging.NewRequester(p.Router); err != nil {
		p.closeJournal()
		return nil, err
	}
	if err := p.registerHandlers(a); err != nil {
		p.closeJournal()
		return nil, err
	}

	p.Controller, err = webview.New(p.ctx, surface, p.Router,
		webview.WithDebug(a.Config.Bridge.Debug),
		webview.WithOrigin(entity.Origin(a.Config.Bridge.Origin)),
		webview.WithReporter(reporters),
		webview.WithStateObserver(func(from, to entity.ConnectionState) {
			p.println(p.traffic.State(from, to))
		}),
	)
	if err != nil {
		p.closeJournal()
		return nil, err
	}
	return p, nil
}

func (p *Panel) registerHandlers(a *App) error {
	if err := p.Router.RegisterFunc(keyReady, func(ctx context.Context, msg messaging.Inbound) error {
		p.println(p.traffic.Inbound(msg.Key, msg.Envelope))
		if err := p.Post(ctx, map[string]string{"type": "greeting", "text": "hello from the host"}); err != nil {
			return err
		}
		if p.onReady != nil {
			p.onReady(ctx, p)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := p.Router.Register(methodHostInfo, messaging.RequestHandler(p.Router,
		func(context.Context, json.RawMessage) (any, error) {
			return map[string]string{
				"version": a.BuildInfo.Version,
				"panel":   p.ID,
			}, nil
		})); err != nil {
		return err
	}

	trace := messaging.HandlerFunc(func(_ context.Context, msg messaging.Inbound) error {
		p.println(p.traffic.Inbound(msg.Key, msg.Envelope))
		return nil
	})
	if err := p.Router.Register(keyEcho, trace); err != nil {
		return err
	}
	return p.Router.Register(messaging.CatchAll, trace)
}

// Load navigates the panel.
func (p *Panel) Load(url string) error {
	return p.Controller.LoadURL(p.ctx, url)
}

// Post sends v to the page and prints it.
func (p *Panel) Post(ctx context.Context, v any) error {
	env, err := entity.Marshal(v)
	if err != nil {
		return err
	}
	p.println(p.traffic.Outbound(env))
	return p.Controller.PostMessage(ctx, env)
}

// Ping performs one correlated round trip and prints the result.
func (p *Panel) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sent := time.Now()
	var result struct {
		SentAt string `json:"sent_at"`
	}
	if err := p.Requester.Call(ctx, methodPing, map[string]string{"sent_at": sent.Format(time.RFC3339Nano)}, &result); err != nil {
		p.println(p.traffic.Error(err))
		return err
	}
	logging.FromContext(p.ctx).Info().
		Dur("rtt", time.Since(sent)).
		Str("sent_at", result.SentAt).
		Msg("ping answered")
	return nil
}

// Stats prints router counters.
func (p *Panel) Stats() {
	p.println(p.traffic.Stats(p.Router.Stats()))
}

// Close disposes the controller and flushes the journal.
func (p *Panel) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.Controller.Dispose()
		p.closeJournal()
	})
	return p.closeErr
}

func (p *Panel) closeJournal() {
	if p.journal == nil {
		return
	}
	p.journal.Close()
	if dropped := p.journal.Dropped(); dropped > 0 {
		logging.FromContext(p.ctx).Warn().Uint64("dropped", dropped).Msg("journal reports dropped")
	}
}

func (p *Panel) println(line string) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	_, _ = fmt.Fprintln(p.out, line)
}
