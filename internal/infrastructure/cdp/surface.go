package cdp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
	"github.com/ysmood/gson"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/logging"
)

// ErrDisposed is returned by every operation after Dispose.
var ErrDisposed = errors.New("cdp: surface disposed")

// SurfaceOptions tunes the page.
type SurfaceOptions struct {
	Width  int
	Height int
}

// Surface hosts one page. CDP events arrive on rod's goroutines; they are
// queued and replayed by Run so callbacks always fire on a single goroutine.
type Surface struct {
	ctx    context.Context
	page   *rod.Page
	cancel context.CancelFunc

	mu        sync.Mutex
	url       string
	loading   bool
	disposed  bool
	callbacks port.SurfaceCallbacks
	channels  map[string]*queryChannel
	nextID    int

	queueMu sync.Mutex
	queue   []func()
	wake    chan struct{}
	closed  chan struct{}
}

// NewSurface opens a blank page in browser.
func NewSurface(ctx context.Context, browser *rod.Browser, opts SurfaceOptions) (*Surface, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if opts.Width > 0 && opts.Height > 0 {
		if err := (proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.Width,
			Height:            opts.Height,
			DeviceScaleFactor: 1,
		}).Call(page); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("set viewport: %w", err)
		}
	}
	return newSurface(ctx, page), nil
}

func newSurface(ctx context.Context, page *rod.Page) *Surface {
	eventsCtx, cancel := context.WithCancel(ctx)
	s := &Surface{
		ctx:      logging.WithComponent(ctx, "cdp"),
		page:     page,
		cancel:   cancel,
		url:      "about:blank",
		channels: make(map[string]*queryChannel),
		wake:     make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}

	wait := page.Context(eventsCtx).EachEvent(
		func(e *proto.PageFrameStartedLoading) {
			if e.FrameID != page.FrameID {
				return
			}
			s.setLoading(true, "")
		},
		func(e *proto.PageFrameNavigated) {
			if e.Frame == nil || e.Frame.ParentID != "" {
				return
			}
			s.mu.Lock()
			s.url = e.Frame.URL
			s.mu.Unlock()
		},
		func(_ *proto.PageLoadEventFired) {
			s.setLoading(false, "")
		},
	)
	go wait()
	return s
}

func (s *Surface) log() *zerolog.Logger {
	return logging.FromContext(s.ctx)
}

func (s *Surface) setLoading(loading bool, url string) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.loading = loading
	if url != "" {
		s.url = url
	}
	state := port.LoadingState{IsLoading: s.loading, URL: s.url}
	s.mu.Unlock()

	s.post(func() {
		s.mu.Lock()
		cb := s.callbacks.OnLoadingStateChange
		s.mu.Unlock()
		if cb != nil {
			cb(state)
		}
	})
}

// post queues fn for the dispatch goroutine without ever blocking rod.
func (s *Surface) post(fn func()) {
	s.queueMu.Lock()
	s.queue = append(s.queue, fn)
	s.queueMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run replays engine events in order until ctx is done or the surface is
// disposed. It must run on exactly one goroutine.
func (s *Surface) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closed:
			return nil
		case <-s.wake:
		}

		for {
			s.queueMu.Lock()
			if len(s.queue) == 0 {
				s.queueMu.Unlock()
				break
			}
			fn := s.queue[0]
			s.queue = s.queue[1:]
			s.queueMu.Unlock()
			fn()
		}
	}
}

// LoadURL implements port.Surface.
func (s *Surface) LoadURL(ctx context.Context, url string) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// IsLoading implements port.Surface.
func (s *Surface) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ExecuteScript runs script as the body of a function in the page.
func (s *Surface) ExecuteScript(ctx context.Context, script, _ string) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	_, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      "() => {\n" + script + "\n}",
		ByValue: true,
	})
	if err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// NewQueryChannel exposes a binding on window. Bindings survive navigation.
func (s *Surface) NewQueryChannel() (port.QueryChannel, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	s.nextID++
	ch := &queryChannel{surface: s, name: fmt.Sprintf("__hostQuery_%d", s.nextID)}
	s.channels[ch.name] = ch
	s.mu.Unlock()

	stop, err := s.page.Expose(ch.name, func(req gson.JSON) (interface{}, error) {
		payload := req.Str()
		s.post(func() { ch.deliver(payload) })
		return nil, nil
	})
	if err != nil {
		s.mu.Lock()
		delete(s.channels, ch.name)
		s.mu.Unlock()
		return nil, fmt.Errorf("expose %s: %w", ch.name, err)
	}
	ch.stop = stop
	return ch, nil
}

// SetCallbacks implements port.Surface. Headless Chromium never raises a
// native context menu, so OnContextMenu is never called.
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
	if _, err := s.page.Activate(); err != nil {
		return fmt.Errorf("activate page: %w", err)
	}
	return nil
}

// Dispose closes the page. Safe to call twice.
func (s *Surface) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	channels := s.channels
	s.channels = map[string]*queryChannel{}
	s.mu.Unlock()

	for _, ch := range channels {
		ch.Dispose()
	}
	s.cancel()
	close(s.closed)

	if err := s.page.Close(); err != nil {
		s.log().Debug().Err(err).Msg("closing page")
		return fmt.Errorf("close page: %w", err)
	}
	return nil
}

func (s *Surface) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
