//go:build !webkit_cgo

package webkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/hostbridge/internal/application/port"
)

func TestRunWindow_UnavailableWithoutCgoTag(t *testing.T) {
	assert.False(t, IsNativeAvailable())

	called := false
	err := RunWindow(context.Background(), WindowOptions{}, func(port.Surface) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.False(t, called)
}
