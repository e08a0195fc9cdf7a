//go:build webkit_cgo

package webkit

import (
	"context"
	"fmt"
	"os"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/logging"
)

// RunWindow starts GTK, shows a window hosting a fresh surface and calls
// ready on the main thread. It blocks until the window closes or ctx is
// done. The caller must hold the OS thread.
func RunWindow(ctx context.Context, opts WindowOptions, ready func(port.Surface) error) error {
	log := logging.FromContext(ctx)
	app := gtk.NewApplication(ApplicationID, gio.ApplicationFlagsNone)

	var startErr error
	app.ConnectActivate(func() {
		surface, err := NewSurface(ctx)
		if err != nil {
			startErr = err
			app.Quit()
			return
		}

		win := gtk.NewApplicationWindow(app)
		win.SetTitle(opts.Title)
		win.SetDefaultSize(opts.Width, opts.Height)
		win.SetChild(surface.Widget())
		win.ConnectCloseRequest(func() bool {
			closeWindow(log, opts.OnClose, surface)
			return false
		})
		win.Present()

		if err := ready(surface); err != nil {
			startErr = fmt.Errorf("starting panel: %w", err)
			app.Quit()
		}
	})

	go func() {
		<-ctx.Done()
		coreglib.IdleAdd(func() bool {
			app.Quit()
			return false
		})
	}()

	code := app.Run(os.Args[:1])
	if startErr != nil {
		return startErr
	}
	if code != 0 {
		return fmt.Errorf("gtk exited with status %d", code)
	}
	return nil
}
