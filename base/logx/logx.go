// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides leveled logging and printing
// based on the standard library log/slog system.
// The user-visible log level is controlled by [UserLevel],
// which is typically set from a -v / -vv style command flag.
package logx

import (
	"log/slog"
	"os"
)

// UserLevel is the verbosity level that the user has selected for
// what logging and printing messages should be displayed.
// It defaults to [slog.LevelInfo] in normal builds and
// [slog.LevelDebug] in debug builds.
var UserLevel = defaultUserLevel

func init() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// levelEnabled returns whether messages at the given
// level should be displayed per [UserLevel].
func levelEnabled(level slog.Level) bool {
	return level >= UserLevel
}
