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

// Texture implements [colorpass.Texture] on a WebGPU texture.
type Texture struct {
	gp            *GPU
	cfg           colorpass.TextureConfig
	format        wgpu.TextureFormat
	bytesPerPixel int

	tex  *wgpu.Texture
	view *wgpu.TextureView
}

// textureFormat maps a pixel/component format request to a WebGPU
// texture format. Unsupported combinations are programmer errors.
func textureFormat(pf colorpass.PixelFormat, cf colorpass.ComponentFormat) (wgpu.TextureFormat, int, error) {
	switch pf {
	case colorpass.RGBA:
		switch cf {
		case colorpass.UInt8:
			return wgpu.TextureFormatRGBA8Unorm, 4, nil
		case colorpass.Float16:
			return wgpu.TextureFormatRGBA16Float, 8, nil
		case colorpass.Float32:
			return wgpu.TextureFormatRGBA32Float, 16, nil
		}
	case colorpass.R:
		switch cf {
		case colorpass.UInt8:
			return wgpu.TextureFormatR8Unorm, 1, nil
		case colorpass.Float32:
			return wgpu.TextureFormatR32Float, 4, nil
		}
	case colorpass.Depth:
		return wgpu.TextureFormatDepth24Plus, 4, nil
	case colorpass.DepthStencil:
		return wgpu.TextureFormatDepth24PlusStencil8, 4, nil
	}
	return wgpu.TextureFormatUndefined, 0, fmt.Errorf("gpu: unsupported texture format: pixel %d component %d", pf, cf)
}

// NewTexture implements [colorpass.Backend].
func (r *Renderer) NewTexture(cfg *colorpass.TextureConfig) (colorpass.Texture, error) {
	format, bpp, err := textureFormat(cfg.Pixel, cfg.Component)
	if err != nil {
		return nil, err
	}
	tx := &Texture{gp: r.gp, cfg: *cfg, format: format, bytesPerPixel: bpp}
	if err := tx.alloc(cfg.Size); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Texture) alloc(size image.Point) error {
	usage := wgpu.TextureUsageCopyDst
	if tx.cfg.ShaderRead {
		usage |= wgpu.TextureUsageTextureBinding
	}
	if tx.cfg.RenderTarget {
		usage |= wgpu.TextureUsageRenderAttachment
	}
	t, err := tx.gp.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: tx.cfg.Name,
		Size: wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.format,
		Usage:         usage,
	})
	if err != nil {
		return fmt.Errorf("gpu: create texture %q: %w", tx.cfg.Name, err)
	}
	view, err := t.CreateView(nil)
	if err != nil {
		t.Release()
		return fmt.Errorf("gpu: create texture view %q: %w", tx.cfg.Name, err)
	}
	tx.tex = t
	tx.view = view
	tx.cfg.Size = size
	return nil
}

// Size implements [colorpass.Texture].
func (tx *Texture) Size() image.Point {
	return tx.cfg.Size
}

// View returns the texture view for binding or render attachment use.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// Upload implements [colorpass.Texture].
func (tx *Texture) Upload(data []byte) error {
	sz := tx.cfg.Size
	want := sz.X * sz.Y * tx.bytesPerPixel
	if len(data) != want {
		return fmt.Errorf("gpu: upload to %q: have %d bytes, want %d", tx.cfg.Name, len(data), want)
	}
	return tx.gp.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tx.tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(sz.X * tx.bytesPerPixel),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
	)
}

// Resize implements [colorpass.Texture]. Previous contents are lost.
func (tx *Texture) Resize(size image.Point) error {
	if size == tx.cfg.Size {
		return nil
	}
	tx.Release()
	return tx.alloc(size)
}

// Release implements [colorpass.Texture].
func (tx *Texture) Release() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.tex != nil {
		tx.tex.Release()
		tx.tex = nil
	}
}
