package main

import (
	"context"
	"runtime"

	"github.com/bnema/hostbridge/internal/cli/cmd"
	"github.com/bnema/hostbridge/internal/domain/build"
	"github.com/bnema/hostbridge/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	enableCrashForensics()
	ctx := logging.WithContext(context.Background(), logging.NewFromEnv())
	defer logging.RecoverPanic(ctx)
	logCoreDumpLimits(ctx)

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
