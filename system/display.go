// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system provides the platform display state for color
// management: which primaries, transfer function and luminance range
// each window's display reports, plus user settings overriding them.
package system

import (
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/coralui/coral/colorpass"
)

// SDRWhiteLevelEnv is the environment variable overriding the SDR
// white level (in nits) reported by the display. Unset or empty means
// no override; a non-numeric value is reported once and ignored.
const SDRWhiteLevelEnv = "CORAL_CM_SDR_WHITE_LEVEL"

var (
	envOnce     sync.Once
	envOverride float32
)

// SDRWhiteOverride returns the SDR white level override from
// [SDRWhiteLevelEnv], or 0 if none is set. The variable is read once
// per process.
func SDRWhiteOverride() float32 {
	envOnce.Do(func() {
		envOverride = parseSDRWhite(os.Getenv(SDRWhiteLevelEnv))
	})
	return envOverride
}

func parseSDRWhite(s string) float32 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v <= 0 {
		slog.Warn("invalid SDR white level override; ignoring", "var", SDRWhiteLevelEnv, "value", s)
		return 0
	}
	return float32(v)
}

// DisplayQuerier reports the color management state of the display a
// window is on. Platform drivers implement it; the zero implementation
// [DefaultDisplay] reports the untouched default state.
type DisplayQuerier interface {
	DisplayState() colorpass.DisplayState
}

// DefaultDisplay is a [DisplayQuerier] that always reports the
// default display state, leaving color management inactive.
type DefaultDisplay struct{}

func (DefaultDisplay) DisplayState() colorpass.DisplayState {
	var ds colorpass.DisplayState
	ds.Defaults()
	return ds
}

// CachedDisplay wraps a [DisplayQuerier] whose query is expensive,
// caching the state until [CachedDisplay.Invalidate] is called (e.g.
// when the window moves to another monitor or the OS reports a
// display change).
type CachedDisplay struct {
	Querier DisplayQuerier

	mu    sync.Mutex
	valid bool
	state colorpass.DisplayState
}

// NewCachedDisplay returns a caching wrapper around the given querier.
func NewCachedDisplay(q DisplayQuerier) *CachedDisplay {
	return &CachedDisplay{Querier: q}
}

func (cd *CachedDisplay) DisplayState() colorpass.DisplayState {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if !cd.valid {
		cd.state = cd.Querier.DisplayState()
		cd.valid = true
	}
	return cd.state
}

// Invalidate discards the cached state so the next query hits the
// underlying querier again.
func (cd *CachedDisplay) Invalidate() {
	cd.mu.Lock()
	cd.valid = false
	cd.mu.Unlock()
}

// EffectiveState resolves the display state a window's color pass
// should use: the querier's state with the user settings and then the
// environment override applied on top.
func EffectiveState(q DisplayQuerier) colorpass.DisplayState {
	ds := q.DisplayState()
	TheSettings.Apply(&ds)
	if w := SDRWhiteOverride(); w > 0 {
		ds.SDRWhiteLevel = w
	}
	return ds
}
