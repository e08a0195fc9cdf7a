package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/hostbridge/assets"
	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/cli"
	"github.com/bnema/hostbridge/internal/config"
	urlutil "github.com/bnema/hostbridge/internal/domain/url"
	"github.com/bnema/hostbridge/internal/infrastructure/cdp"
	"github.com/bnema/hostbridge/internal/infrastructure/jsruntime"
	"github.com/bnema/hostbridge/internal/infrastructure/webkit"
	"github.com/bnema/hostbridge/internal/logging"
)

var (
	openEngine   string
	openDuration time.Duration
	openNoPing   bool
)

var openCmd = &cobra.Command{
	Use:   "open [url]",
	Short: "Open a bridged panel and log its traffic",
	Long: `Open a panel on the selected engine, inject the bridge and print every
message crossing it. Without a URL the configured bridge.initial_url is
used; the default is the built-in echo page, which answers every host
message and correlated request.

Examples:
  hostbridge open                          # echo page, in-process engine
  hostbridge open --engine cdp --for 10s   # echo page in Chromium
  hostbridge open --engine webkit https://example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().StringVarP(&openEngine, "engine", "e", "", "engine: headless, cdp or webkit (default: engine.kind)")
	openCmd.Flags().DurationVar(&openDuration, "for", 0, "close the panel after this long (default: until interrupted)")
	openCmd.Flags().BoolVar(&openNoPing, "no-ping", false, "skip the correlated ping once the page is ready")
}

type openRun struct {
	app      *cli.App
	url      string
	kind     config.EngineKind
	registry *prometheus.Registry
	timeline *logging.Timeline
}

func runOpen(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config

	run := &openRun{
		app:      app,
		url:      cfg.Bridge.InitialURL,
		kind:     cfg.Engine.Kind,
		registry: prometheus.NewRegistry(),
	}
	if len(args) > 0 {
		run.url = urlutil.Normalize(args[0])
	}
	if openEngine != "" {
		run.kind = config.EngineKind(openEngine)
	}

	ctx, stop := signal.NotifyContext(app.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	run.watchConfig(ctx)
	run.timeline = logging.NewTimeline(ctx)
	defer run.timeline.Finish()

	log := logging.FromContext(ctx)
	log.Info().Str("engine", string(run.kind)).Str("url", run.url).Msg("opening panel")

	switch run.kind {
	case config.EngineHeadless:
		return run.headless(ctx)
	case config.EngineCDP:
		return run.chromium(ctx)
	case config.EngineWebKit:
		return run.webkit(ctx)
	default:
		return fmt.Errorf("unknown engine %q", run.kind)
	}
}

// watchConfig applies log level changes while the panel is open.
func (r *openRun) watchConfig(ctx context.Context) {
	log := logging.FromContext(ctx)
	r.app.Manager.OnConfigChange(func(c *config.Config) {
		zerolog.SetGlobalLevel(logging.ParseLevel(c.Logging.Level))
		log.Info().Str("level", c.Logging.Level).Msg("configuration reloaded")
	})
	if err := r.app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching disabled")
	}
}

// engineURL serves the echo page through a data: URL on real browsers.
func (r *openRun) engineURL() string {
	if r.url == assets.EchoPageURL && r.kind != config.EngineHeadless {
		return assets.EchoPageDataURL()
	}
	return r.url
}

func (r *openRun) serveMetrics(ctx context.Context, g *errgroup.Group, p *cli.Panel) {
	addr := r.app.Config.Diagnostics.MetricsAddr
	if addr == "" {
		return
	}
	g.Go(func() error {
		return p.Metrics.Serve(ctx, addr)
	})
}

// ready marks the page's first message and closes the startup timeline.
func (r *openRun) ready() {
	r.timeline.Mark("ready")
	r.timeline.Finish()
}

func (r *openRun) pingTimeout() time.Duration {
	return r.app.Config.Bridge.RequestTimeout
}

// headless runs the in-process engine. Everything happens synchronously
// on this goroutine, so the ping is issued once loading returns.
func (r *openRun) headless(ctx context.Context) error {
	pages := jsruntime.StaticPages{
		assets.EchoPageURL: jsruntime.Bundle(assets.BridgeClientScript, assets.EchoPageScript),
	}
	surface := jsruntime.New(ctx, pages)
	r.timeline.Mark("engine")

	panel, err := r.app.NewPanel(ctx, surface, cli.PanelOptions{
		Registry: r.registry,
		OnReady:  func(context.Context, *cli.Panel) { r.ready() },
	})
	if err != nil {
		return err
	}
	defer func() { _ = panel.Close() }()

	if err := panel.Load(r.engineURL()); err != nil {
		return err
	}
	r.timeline.Mark("loaded")
	if !openNoPing {
		_ = panel.Ping(ctx, r.pingTimeout())
	}
	panel.Stats()

	if openDuration <= 0 && r.app.Config.Diagnostics.MetricsAddr == "" {
		return nil
	}
	held, cancel := holdContext(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(held)
	r.serveMetrics(gctx, g, panel)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	return g.Wait()
}

// chromium runs a CDP page. Engine events are replayed on the Run goroutine;
// the ping runs on its own goroutine because it waits for a reply that
// arrives through Run.
func (r *openRun) chromium(ctx context.Context) error {
	engine := r.app.Config.Engine
	browser, cleanup, err := cdp.Connect(ctx, cdp.BrowserOptions{
		ControlURL: engine.ControlURL,
		Headless:   engine.Headless,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	surface, err := cdp.NewSurface(ctx, browser, cdp.SurfaceOptions{
		Width:  engine.WindowWidth,
		Height: engine.WindowHeight,
	})
	if err != nil {
		return err
	}
	r.timeline.Mark("engine")

	runCtx, cancel := holdContext(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	panel, err := r.app.NewPanel(ctx, surface, cli.PanelOptions{
		Registry: r.registry,
		OnReady: func(_ context.Context, p *cli.Panel) {
			r.ready()
			if openNoPing {
				return
			}
			g.Go(func() error {
				_ = p.Ping(gctx, r.pingTimeout())
				return nil
			})
		},
	})
	if err != nil {
		_ = surface.Dispose()
		return err
	}

	g.Go(func() error {
		return ignoreCanceled(surface.Run(gctx))
	})
	r.serveMetrics(gctx, g, panel)

	if err := panel.Load(r.engineURL()); err != nil {
		_ = panel.Close()
		_ = g.Wait()
		return err
	}
	r.timeline.Mark("loaded")

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	err = g.Wait()
	panel.Stats()
	if closeErr := panel.Close(); err == nil {
		err = closeErr
	}
	return err
}

// webkit runs a GTK window. GTK owns this thread until the window closes.
// Closing the window disposes the panel before the web view goes away.
func (r *openRun) webkit(ctx context.Context) error {
	if !webkit.IsNativeAvailable() {
		return webkit.ErrNotAvailable
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	engine := r.app.Config.Engine
	runCtx, cancel := holdContext(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	var panel *cli.Panel
	err := webkit.RunWindow(gctx, webkit.WindowOptions{
		Title:  "hostbridge",
		Width:  engine.WindowWidth,
		Height: engine.WindowHeight,
		OnClose: func() error {
			if panel == nil {
				return nil
			}
			return panel.Close()
		},
	}, func(surface port.Surface) error {
		r.timeline.Mark("engine")
		var err error
		panel, err = r.app.NewPanel(ctx, surface, cli.PanelOptions{
			Registry: r.registry,
			OnReady:  func(context.Context, *cli.Panel) { r.ready() },
		})
		if err != nil {
			_ = surface.Dispose()
			return err
		}
		r.serveMetrics(gctx, g, panel)
		return panel.Load(r.engineURL())
	})

	if panel != nil {
		panel.Stats()
		if closeErr := panel.Close(); err == nil {
			err = closeErr
		}
	}
	cancel()
	if waitErr := g.Wait(); err == nil {
		err = waitErr
	}
	return err
}

// holdContext ends when ctx does or after --for elapses.
func holdContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if openDuration <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, openDuration)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
