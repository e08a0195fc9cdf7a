//go:build webkit_cgo

package webkit

import (
	"fmt"
	"sync"
)

type queryChannel struct {
	surface *Surface
	id      int

	mu       sync.Mutex
	handler  func(payload string)
	disposed bool
}

// Inject implements port.QueryChannel.
func (c *queryChannel) Inject(jsExpr string) string {
	return fmt.Sprintf("window.webkit.messageHandlers.%s.postMessage(%s);",
		MessageHandlerName, framePayload(c.id, jsExpr))
}

// SetHandler implements port.QueryChannel.
func (c *queryChannel) SetHandler(handler func(payload string)) {
	c.mu.Lock()
	c.handler = handler
	c.mu.Unlock()
}

// Dispose implements port.QueryChannel.
func (c *queryChannel) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.handler = nil
	c.mu.Unlock()
	c.surface.dropChannel(c.id)
}

func (c *queryChannel) deliver(payload string) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}
