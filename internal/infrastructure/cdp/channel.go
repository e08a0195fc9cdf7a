package cdp

import (
	"fmt"
	"sync"
)

type queryChannel struct {
	surface *Surface
	name    string
	stop    func() error

	mu       sync.Mutex
	handler  func(payload string)
	disposed bool
}

// Inject implements port.QueryChannel. The exposed binding returns a
// promise; the bridge does not wait for it.
func (c *queryChannel) Inject(jsExpr string) string {
	return fmt.Sprintf("window.%s(%s);", c.name, jsExpr)
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
	stop := c.stop
	c.mu.Unlock()

	if stop != nil {
		if err := stop(); err != nil {
			c.surface.log().Debug().Err(err).Str("channel", c.name).Msg("removing binding")
		}
	}
}

func (c *queryChannel) deliver(payload string) {
	c.mu.Lock()
	handler, disposed := c.handler, c.disposed
	c.mu.Unlock()
	if disposed || handler == nil {
		return
	}
	handler(payload)
}
