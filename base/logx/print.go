// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"log/slog"
	"os"
)

// print writes the given string to stdout if the given level
// is at or above [UserLevel].
func print(level slog.Level, s string) {
	if levelEnabled(level) {
		fmt.Fprint(os.Stdout, s)
	}
}

// PrintlnDebug prints the given arguments with a newline
// if [UserLevel] is [slog.LevelDebug] or lower.
func PrintlnDebug(a ...any) {
	print(slog.LevelDebug, fmt.Sprintln(a...))
}

// PrintfDebug prints the given formatted string
// if [UserLevel] is [slog.LevelDebug] or lower.
func PrintfDebug(format string, a ...any) {
	print(slog.LevelDebug, fmt.Sprintf(format, a...))
}

// PrintlnInfo prints the given arguments with a newline
// if [UserLevel] is [slog.LevelInfo] or lower.
func PrintlnInfo(a ...any) {
	print(slog.LevelInfo, fmt.Sprintln(a...))
}

// PrintfInfo prints the given formatted string
// if [UserLevel] is [slog.LevelInfo] or lower.
func PrintfInfo(format string, a ...any) {
	print(slog.LevelInfo, fmt.Sprintf(format, a...))
}

// PrintlnWarn prints the given arguments with a newline
// if [UserLevel] is [slog.LevelWarn] or lower.
func PrintlnWarn(a ...any) {
	print(slog.LevelWarn, fmt.Sprintln(a...))
}

// PrintfWarn prints the given formatted string
// if [UserLevel] is [slog.LevelWarn] or lower.
func PrintfWarn(format string, a ...any) {
	print(slog.LevelWarn, fmt.Sprintf(format, a...))
}

// PrintlnError prints the given arguments with a newline
// if [UserLevel] is [slog.LevelError] or lower.
func PrintlnError(a ...any) {
	print(slog.LevelError, fmt.Sprintln(a...))
}

// PrintfError prints the given formatted string
// if [UserLevel] is [slog.LevelError] or lower.
func PrintfError(format string, a ...any) {
	print(slog.LevelError, fmt.Sprintf(format, a...))
}
