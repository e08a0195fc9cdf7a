// Package cmd provides Cobra CLI commands for hostbridge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/hostbridge/internal/cli"
	"github.com/bnema/hostbridge/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "hostbridge",
		Short: "Bridge JSON messages between a Go host and an embedded web page",
		Long: `hostbridge - a message bridge between a Go host and a web page.

A panel hosts one page on a rendering engine (in-process JavaScript,
Chromium over CDP, or WebKitGTK), injects the bridge once the page has
loaded, and routes page messages to host handlers by "method" or "type".

Use 'hostbridge open' to run the built-in echo page, or explore the
subcommands for the diagnostics journal and configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp(configDir)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			app.Out = cmd.OutOrStdout()
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: XDG config dir)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
