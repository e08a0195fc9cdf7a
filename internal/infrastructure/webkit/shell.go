// Package webkit implements port.Surface on a WebKitGTK 6 web view.
// The native backend is only compiled with the webkit_cgo build tag; other
// builds get a RunWindow that returns ErrNotAvailable.
package webkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// MessageHandlerName is the script message handler every query channel
// posts through. Payloads are prefixed with the channel id.
const MessageHandlerName = "hostbridge"

// ApplicationID is the GTK application id of the shell.
const ApplicationID = "io.github.bnema.hostbridge"

// ErrDisposed is returned by every operation after Dispose.
var ErrDisposed = errors.New("webkit: surface disposed")

// ErrNotAvailable is returned when the binary was built without webkit_cgo.
var ErrNotAvailable = errors.New("webkit: engine not compiled in, rebuild with -tags webkit_cgo")

// WindowOptions configures the shell window.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
	// OnClose runs when the user closes the window, before the surface is
	// released. Hosts tear their controller down here.
	OnClose func() error
}

// framePayload prefixes the string value of jsExpr with the channel id.
func framePayload(id int, jsExpr string) string {
	return fmt.Sprintf("'%d:' + String(%s)", id, jsExpr)
}

// splitFrame reverses framePayload on the received text.
func splitFrame(text string) (int, string, error) {
	id, payload, ok := strings.Cut(text, ":")
	if !ok {
		return 0, "", errors.New("script message without channel prefix")
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, "", fmt.Errorf("script message with invalid channel id %q", id)
	}
	return n, payload, nil
}

type disposer interface {
	Dispose() error
}

// closeWindow runs the host hook first so the controller reaches Disposed
// before the surface goes away underneath it.
func closeWindow(log *zerolog.Logger, onClose func() error, surface disposer) {
	if onClose != nil {
		if err := onClose(); err != nil {
			log.Warn().Err(err).Msg("closing panel")
		}
	}
	if err := surface.Dispose(); err != nil {
		log.Warn().Err(err).Msg("disposing web view")
	}
}
