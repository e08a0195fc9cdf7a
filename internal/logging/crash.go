package logging

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

const bytesPerKB = 1024

// RecoverPanic logs a panic with its stack and runtime info, then re-panics.
// It must be deferred directly:
//
//	defer logging.RecoverPanic(ctx)
func RecoverPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	logPanic(FromContext(ctx), r, debug.Stack())
	panic(r)
}

func logPanic(log *zerolog.Logger, r any, stack []byte) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	log.Error().
		Str("panic", fmt.Sprint(r)).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Int("num_cpu", runtime.NumCPU()).
		Uint64("alloc_kb", m.Alloc/bytesPerKB).
		Uint64("sys_kb", m.Sys/bytesPerKB).
		Uint32("num_gc", m.NumGC).
		Str("stack", string(stack)).
		Msg("panic")
}
