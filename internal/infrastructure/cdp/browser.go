// Package cdp implements port.Surface on a Chromium page driven over the
// DevTools protocol.
package cdp

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/bnema/hostbridge/internal/logging"
)

// BrowserOptions selects how Chromium is reached.
type BrowserOptions struct {
	// ControlURL attaches to a running browser. Empty launches one.
	ControlURL string
	// Headless is only used when launching.
	Headless bool
}

// Connect attaches to (or launches) Chromium. The returned cleanup closes
// the connection and kills a launched browser.
func Connect(ctx context.Context, opts BrowserOptions) (*rod.Browser, func(), error) {
	log := logging.FromContext(ctx)

	var l *launcher.Launcher
	controlURL := opts.ControlURL
	if controlURL == "" {
		l = launcher.New().Headless(opts.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, nil, fmt.Errorf("launch chromium: %w", err)
		}
		controlURL = u
		log.Debug().Str("control_url", controlURL).Msg("chromium launched")
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, nil, fmt.Errorf("connect to chromium: %w", err)
	}

	cleanup := func() {
		if err := browser.Close(); err != nil {
			log.Debug().Err(err).Msg("closing chromium connection")
		}
		if l != nil {
			l.Kill()
		}
	}
	return browser, cleanup, nil
}
