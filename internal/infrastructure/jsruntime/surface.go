// Package jsruntime implements port.Surface on an in-process JavaScript
// runtime. Each navigation gets a fresh runtime whose global object plays
// the page's window. It has no rendering and no network access; pages are
// scripts resolved through a PageSource.
//
// A Surface is not safe for concurrent use. Like a native UI thread, all
// calls and callbacks happen on the goroutine that drives it.
package jsruntime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/logging"
)

// ErrDisposed is returned by every operation after Dispose.
var ErrDisposed = errors.New("jsruntime: surface disposed")

// ErrNoDocument is returned when a script runs before any page was loaded.
var ErrNoDocument = errors.New("jsruntime: no document loaded")

const maxTasksPerPump = 100_000

type task struct {
	// generation pins page-scoped tasks to the document that queued them.
	// Zero survives navigation.
	generation uint64
	run        func()
}

type listener struct {
	value sobek.Value
	fn    sobek.Callable
}

// Surface is a headless page host.
type Surface struct {
	ctx   context.Context
	pages PageSource

	rt         *sobek.Runtime
	generation uint64
	url        string
	loading    bool
	focused    bool
	disposed   bool

	callbacks port.SurfaceCallbacks
	channels  map[string]*queryChannel
	nextID    int
	listeners []listener
	console   []string

	tasks   []task
	pumping bool
}

// New creates a surface resolving pages through pages.
func New(ctx context.Context, pages PageSource) *Surface {
	if ctx == nil {
		ctx = context.Background()
	}
	if pages == nil {
		pages = StaticPages{}
	}
	return &Surface{
		ctx:      logging.WithComponent(ctx, "jsruntime"),
		pages:    pages,
		channels: make(map[string]*queryChannel),
	}
}

func (s *Surface) log() *zerolog.Logger {
	return logging.FromContext(s.ctx)
}

// LoadURL replaces the document with the page served for url. The loading
// callback fires with IsLoading=true before the page script runs and with
// IsLoading=false once it finished.
func (s *Surface) LoadURL(_ context.Context, url string) error {
	if s.disposed {
		return ErrDisposed
	}
	src, err := s.pages.Page(url)
	if err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}

	s.url = url
	s.loading = true
	s.emitLoading()
	if s.disposed {
		return nil
	}

	if err := s.newDocument(); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	if src != "" {
		if _, err := s.rt.RunScript(url, src); err != nil {
			s.consoleLine("error", "Uncaught "+describeError(err))
		}
	}
	s.pump()

	s.loading = false
	s.emitLoading()
	s.pump()
	return nil
}

func (s *Surface) emitLoading() {
	if s.disposed {
		return
	}
	if cb := s.callbacks.OnLoadingStateChange; cb != nil {
		cb(port.LoadingState{IsLoading: s.loading, URL: s.url})
	}
}

func (s *Surface) newDocument() error {
	s.generation++
	s.listeners = nil
	s.rt = sobek.New()
	if err := s.installGlobals(s.rt); err != nil {
		return err
	}
	for _, ch := range s.channels {
		if err := ch.install(s.rt); err != nil {
			return err
		}
	}
	return nil
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	return s.url
}

// IsLoading implements port.Surface.
func (s *Surface) IsLoading() bool {
	return s.loading
}

// ExecuteScript runs script in the current document, then drains the task
// queue unless a drain is already in progress further up the stack.
func (s *Surface) ExecuteScript(_ context.Context, script, sourceURL string) error {
	if s.disposed {
		return ErrDisposed
	}
	if s.rt == nil {
		return ErrNoDocument
	}
	if sourceURL == "" {
		sourceURL = "eval"
	}
	_, err := s.rt.RunScript(sourceURL, script)
	s.pump()
	if err != nil {
		return fmt.Errorf("execute script: %s", describeError(err))
	}
	return nil
}

// Evaluate runs expr in the current document and exports the result.
func (s *Surface) Evaluate(expr string) (any, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.rt == nil {
		return nil, ErrNoDocument
	}
	v, err := s.rt.RunString(expr)
	s.pump()
	if err != nil {
		return nil, errors.New(describeError(err))
	}
	if v == nil {
		return nil, nil
	}
	return v.Export(), nil
}

// NewQueryChannel implements port.Surface. Channels survive navigation.
func (s *Surface) NewQueryChannel() (port.QueryChannel, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	s.nextID++
	ch := &queryChannel{surface: s, name: fmt.Sprintf("__hostQuery_%d", s.nextID)}
	s.channels[ch.name] = ch
	if s.rt != nil {
		if err := ch.install(s.rt); err != nil {
			delete(s.channels, ch.name)
			return nil, err
		}
	}
	return ch, nil
}

// SetCallbacks implements port.Surface.
func (s *Surface) SetCallbacks(callbacks port.SurfaceCallbacks) {
	s.callbacks = callbacks
}

// Focus implements port.Surface.
func (s *Surface) Focus() error {
	if s.disposed {
		return ErrDisposed
	}
	s.focused = true
	return nil
}

// Focused reports whether Focus was called.
func (s *Surface) Focused() bool {
	return s.focused
}

// RequestContextMenu simulates a right click offering items and returns
// the entries left after the context-menu callback ran.
func (s *Surface) RequestContextMenu(items []string) []string {
	menu := &ContextMenu{items: append([]string(nil), items...)}
	if s.disposed {
		return menu.Items()
	}
	if cb := s.callbacks.OnContextMenu; cb != nil {
		cb(menu)
	}
	return menu.Items()
}

// Console returns every console line printed so far, as "level: text".
func (s *Surface) Console() []string {
	out := make([]string, len(s.console))
	copy(out, s.console)
	return out
}

// Disposed reports whether Dispose ran.
func (s *Surface) Disposed() bool {
	return s.disposed
}

// Dispose drops the document and every channel. Safe to call twice.
func (s *Surface) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true
	for _, ch := range s.channels {
		ch.disposed = true
	}
	s.channels = map[string]*queryChannel{}
	s.tasks = nil
	s.listeners = nil
	s.rt = nil
	return nil
}

func (s *Surface) enqueue(t task) {
	if s.disposed {
		return
	}
	s.tasks = append(s.tasks, t)
}

// pump runs queued tasks in FIFO order, including tasks queued while it runs.
func (s *Surface) pump() {
	if s.pumping {
		return
	}
	s.pumping = true
	defer func() { s.pumping = false }()

	for n := 0; len(s.tasks) > 0; n++ {
		if n >= maxTasksPerPump {
			s.log().Warn().Int("pending", len(s.tasks)).Msg("task queue did not settle, dropping remaining tasks")
			s.tasks = nil
			return
		}
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		if t.generation != 0 && t.generation != s.generation {
			continue
		}
		t.run()
	}
}

func (s *Surface) consoleLine(level, text string) {
	s.console = append(s.console, level+": "+text)

	var event *zerolog.Event
	switch level {
	case "error":
		event = s.log().Warn()
	case "warn":
		event = s.log().Info()
	default:
		event = s.log().Debug()
	}
	event.Str("url", s.url).Str("level", level).Msg(text)
}

func describeError(err error) string {
	var ex *sobek.Exception
	if errors.As(err, &ex) {
		if v := ex.Value(); v != nil {
			return strings.TrimSpace(v.String())
		}
		return ex.Error()
	}
	return err.Error()
}
