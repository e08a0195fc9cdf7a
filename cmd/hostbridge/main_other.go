//go:build !linux && !darwin

package main

import "context"

func enableCrashForensics() {}

func logCoreDumpLimits(context.Context) {}
