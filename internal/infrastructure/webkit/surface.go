//go:build webkit_cgo

package webkit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/logging"
)

// Surface wraps one *webkit.WebView. Every method must be called from the
// GTK main thread.
type Surface struct {
	ctx  context.Context
	view *webkit.WebView
	ucm  *webkit.UserContentManager

	mu        sync.Mutex
	callbacks port.SurfaceCallbacks
	channels  map[int]*queryChannel
	nextID    int
	disposed  bool
	signals   []coreglib.SignalHandle
	ucmSignal coreglib.SignalHandle
}

// NewSurface creates a web view and connects its signals.
func NewSurface(ctx context.Context) (*Surface, error) {
	view := webkit.NewWebView()
	if view == nil {
		return nil, errors.New("webkit: failed to create web view")
	}
	ucm := view.UserContentManager()
	if ucm == nil {
		return nil, errors.New("webkit: web view has no user content manager")
	}

	s := &Surface{
		ctx:      logging.WithComponent(ctx, "webkit"),
		view:     view,
		ucm:      ucm,
		channels: make(map[int]*queryChannel),
	}

	// Connect before registering the handler so no message is missed.
	s.ucmSignal = ucm.ConnectScriptMessageReceived(s.onScriptMessage)
	if !ucm.RegisterScriptMessageHandler(MessageHandlerName, "") {
		ucm.HandlerDisconnect(s.ucmSignal)
		return nil, fmt.Errorf("webkit: register script message handler %q", MessageHandlerName)
	}

	s.signals = append(s.signals,
		view.ConnectLoadChanged(s.onLoadChanged),
		view.ConnectContextMenu(s.onContextMenu),
	)
	return s, nil
}

// Widget returns the view for embedding in a window.
func (s *Surface) Widget() *webkit.WebView {
	return s.view
}

func (s *Surface) log() *zerolog.Logger {
	return logging.FromContext(s.ctx)
}

func (s *Surface) onLoadChanged(event webkit.LoadEvent) {
	var loading bool
	switch event {
	case webkit.LoadStarted:
		loading = true
	case webkit.LoadFinished:
		loading = false
	default:
		return
	}

	s.mu.Lock()
	cb, disposed := s.callbacks.OnLoadingStateChange, s.disposed
	s.mu.Unlock()
	if disposed || cb == nil {
		return
	}
	cb(port.LoadingState{IsLoading: loading, URL: s.view.URI()})
}

// onContextMenu returns true to suppress the menu once the callback left
// it empty.
func (s *Surface) onContextMenu(menu *webkit.ContextMenu, _ *webkit.HitTestResult) bool {
	s.mu.Lock()
	cb, disposed := s.callbacks.OnContextMenu, s.disposed
	s.mu.Unlock()
	if disposed || cb == nil {
		return false
	}
	m := contextMenu{menu: menu}
	cb(m)
	return m.Len() == 0
}

func (s *Surface) onScriptMessage(value *javascriptcore.Value) {
	if value == nil || !value.IsString() {
		s.log().Warn().Msg("ignoring non-string script message")
		return
	}
	n, payload, err := splitFrame(value.String())
	if err != nil {
		s.log().Warn().Err(err).Msg("ignoring script message")
		return
	}

	s.mu.Lock()
	ch := s.channels[n]
	s.mu.Unlock()
	if ch == nil {
		return
	}
	ch.deliver(payload)
}

// LoadURL implements port.Surface.
func (s *Surface) LoadURL(_ context.Context, url string) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	s.view.LoadURI(url)
	return nil
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	if s.isDisposed() {
		return ""
	}
	return s.view.URI()
}

// IsLoading implements port.Surface.
func (s *Surface) IsLoading() bool {
	if s.isDisposed() {
		return false
	}
	return s.view.IsLoading()
}

// ExecuteScript schedules script in the main world and returns at once.
// WebKit reports evaluation errors later; they reach OnScriptError.
func (s *Surface) ExecuteScript(ctx context.Context, script, sourceURL string) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	s.view.EvaluateJavascript(ctx, script, "", sourceURL, func(res gio.AsyncResulter) {
		if _, err := s.view.EvaluateJavascriptFinish(res); err != nil {
			s.scriptFailed(script, sourceURL, err)
		}
	})
	return nil
}

func (s *Surface) scriptFailed(script, sourceURL string, err error) {
	s.mu.Lock()
	cb, disposed := s.callbacks.OnScriptError, s.disposed
	s.mu.Unlock()
	if disposed {
		return
	}
	if cb == nil {
		s.log().Warn().Err(err).Str("source_url", sourceURL).Msg("script evaluation failed")
		return
	}
	cb(script, err)
}

// NewQueryChannel implements port.QueryChannel over the shared handler.
func (s *Surface) NewQueryChannel() (port.QueryChannel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil, ErrDisposed
	}
	s.nextID++
	ch := &queryChannel{surface: s, id: s.nextID}
	s.channels[ch.id] = ch
	return ch, nil
}

// SetCallbacks implements port.Surface.
func (s *Surface) SetCallbacks(callbacks port.SurfaceCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	s.mu.Unlock()
}

// Focus implements port.Surface.
func (s *Surface) Focus() error {
	if s.isDisposed() {
		return ErrDisposed
	}
	if !s.view.GrabFocus() {
		s.log().Debug().Msg("web view refused focus")
	}
	return nil
}

// Dispose disconnects every signal and terminates the web process.
func (s *Surface) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	signals := s.signals
	s.signals = nil
	s.channels = map[int]*queryChannel{}
	s.callbacks = port.SurfaceCallbacks{}
	s.mu.Unlock()

	for _, h := range signals {
		s.view.HandlerDisconnect(h)
	}
	s.ucm.HandlerDisconnect(s.ucmSignal)
	s.ucm.UnregisterScriptMessageHandler(MessageHandlerName, "")
	s.view.TerminateWebProcess()
	return nil
}

func (s *Surface) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Surface) dropChannel(id int) {
	s.mu.Lock()
	delete(s.channels, id)
	s.mu.Unlock()
}

type contextMenu struct {
	menu *webkit.ContextMenu
}

func (m contextMenu) Len() int { return int(m.menu.NItems()) }

func (m contextMenu) Clear() { m.menu.RemoveAll() }
