// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu implements the WebGPU rendering backend for the display
// color management pass, including float framebuffer textures and the
// color conversion shader.
package gpu

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/coralui/coral/base/errors"
)

var theInstance *wgpu.Instance

// Instance returns the shared WebGPU instance, creating it if needed.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU holds the WebGPU adapter, device, and queue shared by all
// windows and render passes.
type GPU struct {
	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue

	// DebugLevel is the verbosity for backend diagnostics.
	DebugLevel slog.Level
}

// NewGPU selects an adapter compatible with the given surface (which
// may be nil for offscreen use) and opens a device on it.
func NewGPU(surface *wgpu.Surface) (*GPU, error) {
	gp := &GPU{}
	adapter, err := Instance().RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	gp.Adapter = adapter
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	gp.Device = device
	gp.Queue = device.GetQueue()
	return gp, nil
}

// Release frees the device and adapter. Call as the last step after
// all surfaces and passes have been released.
func (gp *GPU) Release() {
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
}
