// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/coralui/coral/colorpass"
)

// Renderer implements [colorpass.Backend] for one window surface.
// It owns the surface configuration and the per-frame command
// encoding for the intermediate render target.
type Renderer struct {
	gp      *GPU
	surface *wgpu.Surface
	config  wgpu.SurfaceConfiguration

	// FloatBuffer is whether the surface is configured with a
	// floating point format.
	FloatBuffer bool

	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

// NewRenderer configures the given surface at the given size and
// returns a renderer for it.
func NewRenderer(gp *GPU, surface *wgpu.Surface, size image.Point) (*Renderer, error) {
	r := &Renderer{gp: gp, surface: surface}
	caps := surface.GetCapabilities(gp.Adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("gpu: surface reports no compatible texture formats")
	}
	r.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	switch r.config.Format {
	case wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatRGBA32Float:
		r.FloatBuffer = true
	}
	surface.Configure(gp.Adapter, gp.Device, &r.config)
	return r, nil
}

// Format returns the texture format the surface was configured with.
func (r *Renderer) Format() wgpu.TextureFormat {
	return r.config.Format
}

// Size returns the current surface size in pixels.
func (r *Renderer) Size() image.Point {
	return image.Point{int(r.config.Width), int(r.config.Height)}
}

// SetSize reconfigures the surface at a new size, e.g. after a window
// resize. Call between frames only.
func (r *Renderer) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	r.config.Width = uint32(size.X)
	r.config.Height = uint32(size.Y)
	r.surface.Configure(r.gp.Adapter, r.gp.Device, &r.config)
}

// BeginTarget implements [colorpass.Backend]: it opens a command
// encoder and a render pass targeting the given intermediate
// textures. The pass stays open for widget drawing via
// [Renderer.RenderPass] until EndTarget.
func (r *Renderer) BeginTarget(color, depth colorpass.Texture) error {
	if r.pass != nil {
		return fmt.Errorf("gpu: BeginTarget called with a target already active")
	}
	ct, ok := color.(*Texture)
	if !ok {
		return fmt.Errorf("gpu: BeginTarget: color target is not a gpu texture")
	}
	enc, err := r.gp.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	desc := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       ct.View(),
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	}
	if depth != nil {
		dt, ok := depth.(*Texture)
		if !ok {
			enc.Release()
			return fmt.Errorf("gpu: BeginTarget: depth target is not a gpu texture")
		}
		ds := &wgpu.RenderPassDepthStencilAttachment{
			View:            dt.View(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		}
		if dt.cfg.Pixel == colorpass.DepthStencil {
			ds.StencilLoadOp = wgpu.LoadOpClear
			ds.StencilStoreOp = wgpu.StoreOpStore
			ds.StencilClearValue = 0
		}
		desc.DepthStencilAttachment = ds
	}
	r.encoder = enc
	r.pass = enc.BeginRenderPass(desc)
	return nil
}

// RenderPass returns the open render pass between BeginTarget and
// EndTarget, for widget drawing, or nil outside that window.
func (r *Renderer) RenderPass() *wgpu.RenderPassEncoder {
	return r.pass
}

// EndTarget implements [colorpass.Backend]: it closes the
// intermediate render pass and submits its commands.
func (r *Renderer) EndTarget() error {
	if r.pass == nil {
		return fmt.Errorf("gpu: EndTarget called without BeginTarget")
	}
	r.pass.End()
	r.pass.Release()
	r.pass = nil
	cmd, err := r.encoder.Finish(nil)
	r.encoder.Release()
	r.encoder = nil
	if err != nil {
		return err
	}
	r.gp.Queue.Submit(cmd)
	cmd.Release()
	return nil
}

// presentQuad acquires the next surface texture, draws the full
// screen conversion quad into it with the given shader, and presents.
func (r *Renderer) presentQuad(sh *convertShader) error {
	tex, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	defer tex.Release()
	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("gpu: surface texture view: %w", err)
	}
	defer view.Release()

	enc, err := r.gp.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	rp := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(sh.pipeline)
	rp.SetBindGroup(0, sh.bindGroup(), nil)
	rp.SetVertexBuffer(0, sh.vertexBuffer, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(sh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	rp.DrawIndexed(6, 1, 0, 0, 0)
	rp.End()
	rp.Release()

	cmd, err := enc.Finish(nil)
	enc.Release()
	if err != nil {
		return err
	}
	r.gp.Queue.Submit(cmd)
	cmd.Release()
	r.surface.Present()
	return nil
}

// Release frees per-frame state. The surface itself is owned by the
// window and released with it.
func (r *Renderer) Release() {
	if r.pass != nil {
		r.pass.Release()
		r.pass = nil
	}
	if r.encoder != nil {
		r.encoder.Release()
		r.encoder = nil
	}
}
