// Package webview owns the lifecycle of one bridged page: it installs the
// bridge after every qualifying load, forwards page queries to the router
// and posts host messages back into the page.
package webview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bnema/hostbridge/internal/app/messaging"
	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
	"github.com/bnema/hostbridge/internal/logging"
)

// Controller drives the connection state machine of one surface.
// Surface callbacks are expected on the engine's UI thread; the public
// methods may be called from any goroutine.
type Controller struct {
	ctx     context.Context
	surface port.Surface
	router  *messaging.Router
	channel port.QueryChannel
	script  string

	debug     bool
	origin    entity.Origin
	reporter  port.DiagnosticsReporter
	observers []StateObserver

	mu       sync.Mutex
	state    entity.ConnectionState
	disposed atomic.Bool
}

// New binds router to surface and starts listening for load events.
// The controller starts Unconnected.
func New(ctx context.Context, surface port.Surface, router *messaging.Router, opts ...Option) (*Controller, error) {
	if surface == nil {
		return nil, errors.New("surface cannot be nil")
	}
	if router == nil {
		return nil, errors.New("router cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Controller{
		ctx:     logging.WithComponent(ctx, "webview"),
		surface: surface,
		router:  router,
		state:   entity.StateUnconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.origin != entity.NoOrigin {
		c.ctx = logging.WithPanelID(c.ctx, string(c.origin))
	}

	channel, err := surface.NewQueryChannel()
	if err != nil {
		return nil, fmt.Errorf("create query channel: %w", err)
	}
	if err := router.Bind(c); err != nil {
		channel.Dispose()
		return nil, err
	}

	c.channel = channel
	c.script = BridgeScript(channel)
	channel.SetHandler(c.onQuery)
	surface.SetCallbacks(port.SurfaceCallbacks{
		OnLoadingStateChange: c.onLoadingStateChange,
		OnContextMenu:        c.onContextMenu,
		OnScriptError:        c.onScriptError,
	})

	c.log().Debug().Bool("debug", c.debug).Msg("webview controller created")
	return c, nil
}

func (c *Controller) log() *zerolog.Logger {
	return logging.FromContext(c.ctx)
}

// State returns the current connection state.
func (c *Controller) State() entity.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadURL navigates the surface. The state follows the load events it causes.
func (c *Controller) LoadURL(ctx context.Context, url string) error {
	if c.disposed.Load() {
		return &entity.DisposedError{Op: "LoadURL"}
	}
	if url == "" {
		return entity.ErrEmptyURL
	}
	c.log().Debug().Str("url", url).Msg("loading url")
	return c.surface.LoadURL(ctx, url)
}

// PostMessage serializes v and posts it to the page's window. Before the
// bridge is connected the page may not be listening yet.
func (c *Controller) PostMessage(ctx context.Context, v any) error {
	if c.disposed.Load() {
		return &entity.DisposedError{Op: "PostMessage"}
	}
	return c.router.Deliver(ctx, v)
}

// RunScript executes script in the current document. It is the router's
// delivery path.
func (c *Controller) RunScript(ctx context.Context, script string) error {
	if c.disposed.Load() {
		return &entity.DisposedError{Op: "RunScript"}
	}
	return c.surface.ExecuteScript(ctx, script, c.surface.URL())
}

// Focus forwards keyboard focus to the surface.
func (c *Controller) Focus() error {
	if c.disposed.Load() {
		return &entity.DisposedError{Op: "Focus"}
	}
	return c.surface.Focus()
}

// Dispose detaches the query channel and releases the surface.
// Calls after the first are no-ops.
func (c *Controller) Dispose() error {
	if !c.disposed.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	from := c.state
	c.state = entity.StateDisposed
	c.mu.Unlock()
	c.notify(from, entity.StateDisposed)

	c.channel.Dispose()
	if err := c.surface.Dispose(); err != nil {
		return fmt.Errorf("dispose surface: %w", err)
	}
	c.log().Debug().Msg("webview controller disposed")
	return nil
}

func (c *Controller) onLoadingStateChange(ls port.LoadingState) {
	if c.disposed.Load() {
		return
	}
	if !entity.ShouldInstallBridge(ls.IsLoading, ls.URL) {
		c.transition(entity.StateUnconnected)
		return
	}

	if !c.transition(entity.StateConnecting) {
		return
	}
	if err := c.surface.ExecuteScript(c.ctx, c.script, ls.URL); err != nil {
		c.report(&entity.InjectionError{URL: ls.URL, Err: err})
		c.transition(entity.StateUnconnected)
		return
	}
	if c.transition(entity.StateConnected) {
		c.log().Info().Str("url", ls.URL).Msg("router connected")
	}
}

// onScriptError handles failures reported after ExecuteScript returned.
// A failed bridge script means the page never got its api.
func (c *Controller) onScriptError(script string, err error) {
	if c.disposed.Load() {
		return
	}
	if script == c.script {
		c.report(&entity.InjectionError{URL: c.surface.URL(), Err: err})
		c.transition(entity.StateUnconnected)
		return
	}
	c.report(&entity.DeliveryError{Err: err})
}

func (c *Controller) onQuery(payload string) {
	if c.disposed.Load() {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.report(&entity.HandlerError{Err: fmt.Errorf("panic in query handler: %v", rec)})
		}
	}()
	_ = c.router.Handle(c.ctx, payload, c.origin)
}

func (c *Controller) onContextMenu(menu port.ContextMenu) {
	if c.disposed.Load() || menu == nil || c.debug {
		return
	}
	menu.Clear()
}

// transition moves to the given state unless disposed and reports whether
// it did.
func (c *Controller) transition(to entity.ConnectionState) bool {
	c.mu.Lock()
	from := c.state
	if from == entity.StateDisposed {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()

	if from != to {
		c.notify(from, to)
	}
	return true
}

func (c *Controller) notify(from, to entity.ConnectionState) {
	c.log().Debug().Stringer("from", from).Stringer("to", to).Msg("connection state changed")
	for _, observe := range c.observers {
		observe(from, to)
	}
}

func (c *Controller) report(err error) {
	if c.reporter != nil {
		c.reporter.Report(c.ctx, err)
		return
	}
	c.log().Warn().Str("kind", string(entity.KindOf(err))).Err(err).Msg("bridge error")
}
