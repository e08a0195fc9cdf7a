package jsruntime

import (
	"fmt"

	"github.com/grafana/sobek"
)

// queryChannel is exposed to the page as a global function. Calls are
// queued and delivered after the running script returns, like a native
// engine's asynchronous message handler.
type queryChannel struct {
	surface  *Surface
	name     string
	handler  func(payload string)
	disposed bool
}

// Inject implements port.QueryChannel.
func (c *queryChannel) Inject(jsExpr string) string {
	return fmt.Sprintf("window.%s(%s);", c.name, jsExpr)
}

// SetHandler implements port.QueryChannel.
func (c *queryChannel) SetHandler(handler func(payload string)) {
	c.handler = handler
}

// Dispose implements port.QueryChannel.
func (c *queryChannel) Dispose() {
	c.disposed = true
	delete(c.surface.channels, c.name)
}

func (c *queryChannel) install(rt *sobek.Runtime) error {
	return rt.Set(c.name, func(call sobek.FunctionCall) sobek.Value {
		arg := call.Argument(0)
		if sobek.IsUndefined(arg) || sobek.IsNull(arg) {
			panic(rt.NewTypeError("%s expects a string", c.name))
		}
		payload := arg.String()
		c.surface.enqueue(task{run: func() {
			if c.disposed || c.handler == nil {
				return
			}
			c.handler(payload)
		}})
		return sobek.Undefined()
	})
}
