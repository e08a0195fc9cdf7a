// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the embedding browser engine so the bridge core stays
// independent of WebKitGTK, Chromium or the in-process JS runtime.
package port

import (
	"context"
)

// LoadingState is reported by a surface whenever its loading state changes.
type LoadingState struct {
	// IsLoading is true while a navigation is in progress.
	IsLoading bool
	// URL is the surface's current URL at the time of the event.
	URL string
}

// ContextMenu is the native menu about to be shown for one request.
type ContextMenu interface {
	// Len returns the number of entries currently in the menu.
	Len() int
	// Clear removes every entry.
	Clear()
}

// SurfaceCallbacks holds the callback slots a surface invokes on its
// UI thread. Nil slots are skipped.
type SurfaceCallbacks struct {
	// OnLoadingStateChange fires on every loading state transition.
	OnLoadingStateChange func(state LoadingState)
	// OnContextMenu fires before a context menu is shown.
	OnContextMenu func(menu ContextMenu)
	// OnScriptError fires when a script accepted by ExecuteScript later
	// fails to evaluate. Only engines that evaluate asynchronously use it.
	OnScriptError func(script string, err error)
}

// Surface is a single native rendering surface hosting one page.
//
//go:generate mockgen -destination=mocks/mock_surface.go -package=mocks github.com/bnema/hostbridge/internal/application/port Surface,QueryChannel
type Surface interface {
	// LoadURL starts navigating to url. Loading progress is reported
	// asynchronously through OnLoadingStateChange.
	LoadURL(ctx context.Context, url string) error
	// URL returns the currently committed URL.
	URL() string
	// IsLoading reports whether a navigation is in progress.
	IsLoading() bool
	// ExecuteScript runs script against the current document.
	// sourceURL is used by engines that attribute scripts to a document.
	// Synchronous engines return evaluation errors here; asynchronous ones
	// return nil once the script is scheduled and report failures through
	// OnScriptError.
	ExecuteScript(ctx context.Context, script, sourceURL string) error
	// NewQueryChannel creates a one-way page-to-host call channel.
	NewQueryChannel() (QueryChannel, error)
	// SetCallbacks installs the callback slots, replacing previous ones.
	SetCallbacks(callbacks SurfaceCallbacks)
	// Focus forwards keyboard focus to the surface's widget.
	Focus() error
	// Dispose releases the native resources. Safe to call twice.
	Dispose() error
}

// QueryChannel is the one-way call surface page script uses to reach the host.
type QueryChannel interface {
	// Inject returns a JS statement that sends the string value of jsExpr
	// through this channel.
	Inject(jsExpr string) string
	// SetHandler installs the single receiver for payloads.
	SetHandler(handler func(payload string))
	// Dispose detaches the channel. Later page calls are dropped.
	Dispose()
}
