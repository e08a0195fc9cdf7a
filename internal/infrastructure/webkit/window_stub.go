//go:build !webkit_cgo

package webkit

import (
	"context"

	"github.com/bnema/hostbridge/internal/application/port"
)

// RunWindow always fails in builds without webkit_cgo.
func RunWindow(_ context.Context, _ WindowOptions, _ func(port.Surface) error) error {
	return ErrNotAvailable
}
