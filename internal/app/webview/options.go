package webview

import (
	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
)

// StateObserver is called after every connection state transition.
type StateObserver func(from, to entity.ConnectionState)

// Option configures a Controller.
type Option func(*Controller)

// WithDebug keeps native context menu entries when enabled.
func WithDebug(debug bool) Option {
	return func(c *Controller) {
		c.debug = debug
	}
}

// WithOrigin tags every inbound message from this panel.
func WithOrigin(origin entity.Origin) Option {
	return func(c *Controller) {
		c.origin = origin
	}
}

// WithStateObserver registers a transition observer.
func WithStateObserver(observer StateObserver) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithReporter sets the diagnostics sink for injection failures.
func WithReporter(reporter port.DiagnosticsReporter) Option {
	return func(c *Controller) {
		c.reporter = reporter
	}
}
