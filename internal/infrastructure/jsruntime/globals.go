package jsruntime

import (
	"strings"

	"github.com/grafana/sobek"
)

// installGlobals gives the runtime the slice of the browser window API the
// bridge relies on: window/self aliases, console, message events,
// postMessage, setTimeout and location.href.
func (s *Surface) installGlobals(rt *sobek.Runtime) error {
	global := rt.GlobalObject()
	generation := s.generation

	if err := global.Set("window", global); err != nil {
		return err
	}
	if err := global.Set("self", global); err != nil {
		return err
	}

	console := rt.NewObject()
	for _, level := range []string{"log", "info", "debug", "warn", "error"} {
		lvl := level
		if lvl == "log" || lvl == "info" {
			lvl = "info"
		}
		if err := console.Set(level, func(call sobek.FunctionCall) sobek.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			s.consoleLine(lvl, strings.Join(parts, " "))
			return sobek.Undefined()
		}); err != nil {
			return err
		}
	}
	if err := global.Set("console", console); err != nil {
		return err
	}

	location := rt.NewObject()
	if err := location.Set("href", s.url); err != nil {
		return err
	}
	if err := global.Set("location", location); err != nil {
		return err
	}

	if err := global.Set("addEventListener", func(call sobek.FunctionCall) sobek.Value {
		if call.Argument(0).String() != "message" {
			return sobek.Undefined()
		}
		fn, ok := sobek.AssertFunction(call.Argument(1))
		if !ok {
			return sobek.Undefined()
		}
		for _, l := range s.listeners {
			if l.value.StrictEquals(call.Argument(1)) {
				return sobek.Undefined()
			}
		}
		s.listeners = append(s.listeners, listener{value: call.Argument(1), fn: fn})
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	if err := global.Set("removeEventListener", func(call sobek.FunctionCall) sobek.Value {
		if call.Argument(0).String() != "message" {
			return sobek.Undefined()
		}
		kept := s.listeners[:0]
		for _, l := range s.listeners {
			if !l.value.StrictEquals(call.Argument(1)) {
				kept = append(kept, l)
			}
		}
		s.listeners = kept
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	if err := global.Set("postMessage", func(call sobek.FunctionCall) sobek.Value {
		data := call.Argument(0)
		s.enqueue(task{generation: generation, run: func() {
			s.dispatchMessage(rt, data)
		}})
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	return global.Set("setTimeout", func(call sobek.FunctionCall) sobek.Value {
		fn, ok := sobek.AssertFunction(call.Argument(0))
		if !ok {
			return sobek.Undefined()
		}
		s.enqueue(task{generation: generation, run: func() {
			if _, err := fn(sobek.Undefined()); err != nil {
				s.consoleLine("error", "Uncaught "+describeError(err))
			}
		}})
		return sobek.Undefined()
	})
}

// dispatchMessage fires a MessageEvent on every listener registered when
// the task runs.
func (s *Surface) dispatchMessage(rt *sobek.Runtime, data sobek.Value) {
	event := rt.NewObject()
	_ = event.Set("type", "message")
	_ = event.Set("data", data)
	_ = event.Set("origin", s.url)

	listeners := append([]listener(nil), s.listeners...)
	for _, l := range listeners {
		if _, err := l.fn(sobek.Undefined(), event); err != nil {
			s.consoleLine("error", "Uncaught "+describeError(err))
		}
	}
}
