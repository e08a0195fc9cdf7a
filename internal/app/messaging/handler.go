// Package messaging routes envelopes between page script and host handlers.
package messaging

import (
	"context"

	"github.com/bnema/hostbridge/internal/domain/entity"
)

// CatchAll is the routing key of the handler receiving unmatched messages.
const CatchAll = ""

// Inbound is one decoded message from the page.
type Inbound struct {
	// Key is the routing key the message was dispatched under.
	// It is empty for messages without a method or type.
	Key      string
	Envelope entity.Envelope
	Origin   entity.Origin
}

// Decode unmarshals the envelope into dst.
func (m Inbound) Decode(dst any) error {
	return m.Envelope.Decode(dst)
}

// Handler processes one inbound message.
type Handler interface {
	Handle(ctx context.Context, msg Inbound) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, msg Inbound) error

// Handle calls f(ctx, msg).
func (f HandlerFunc) Handle(ctx context.Context, msg Inbound) error {
	return f(ctx, msg)
}

// Target runs delivery scripts in the page of the bound webview.
type Target interface {
	RunScript(ctx context.Context, script string) error
}
