// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelEnabled(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()

	UserLevel = slog.LevelInfo
	assert.False(t, levelEnabled(slog.LevelDebug))
	assert.True(t, levelEnabled(slog.LevelInfo))
	assert.True(t, levelEnabled(slog.LevelError))

	UserLevel = slog.LevelError
	assert.False(t, levelEnabled(slog.LevelWarn))
}

func TestHandler(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	b := &strings.Builder{}
	lg := slog.New(NewHandler(b))

	lg.Debug("hidden")
	lg.Warn("shown", "key", "value")

	out := b.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=")
	assert.Contains(t, out, "value")
}

func TestHandlerGroups(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	b := &strings.Builder{}
	h := NewHandler(b).WithGroup("display").WithAttrs([]slog.Attr{slog.Int("code", 22)})
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	lg := slog.New(h)
	lg.Info("state")
	assert.Contains(t, b.String(), "display.code=")
}
