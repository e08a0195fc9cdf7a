package styles

import (
	"fmt"

	"github.com/bnema/hostbridge/internal/app/messaging"
	"github.com/bnema/hostbridge/internal/domain/entity"
)

// TrafficRenderer renders bridge traffic for "hostbridge open".
type TrafficRenderer struct {
	theme *Theme
}

// NewTrafficRenderer creates a traffic renderer.
func NewTrafficRenderer(theme *Theme) *TrafficRenderer {
	return &TrafficRenderer{theme: theme}
}

// Inbound renders a message received from the page.
func (r *TrafficRenderer) Inbound(key string, env entity.Envelope) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.Highlight.Render(IconArrowIn+" page"),
		r.theme.BadgeMuted.Render(keyLabel(key)),
		r.theme.Normal.Render(env.String()),
	)
}

// Outbound renders a message posted to the page.
func (r *TrafficRenderer) Outbound(env entity.Envelope) string {
	return fmt.Sprintf("%s %s",
		r.theme.Subtle.Render(IconArrowOut+" host"),
		r.theme.Normal.Render(env.String()),
	)
}

// State renders a connection state transition.
func (r *TrafficRenderer) State(from, to entity.ConnectionState) string {
	style := r.theme.Subtle
	if to == entity.StateConnected {
		style = r.theme.SuccessStyle
	}
	return style.Render(fmt.Sprintf("%s %s -> %s", IconCheck, from, to))
}

// Error renders a failure.
func (r *TrafficRenderer) Error(err error) string {
	return r.theme.ErrorStyle.Render(fmt.Sprintf("%s %v", IconX, err))
}

// Stats renders router counters.
func (r *TrafficRenderer) Stats(s messaging.Stats) string {
	return r.theme.Subtle.Render(fmt.Sprintf(
		"dispatched=%d malformed=%d unrouted=%d failed=%d delivered=%d undeliverable=%d",
		s.Dispatched, s.Malformed, s.Unrouted, s.Failed, s.Delivered, s.Undeliverable,
	))
}

func keyLabel(key string) string {
	if key == messaging.CatchAll {
		return "*"
	}
	return key
}
