// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorpass implements the display color management render
// pass: widget rendering draws into an intermediate extended-sRGB
// texture, and a full-screen conversion pass then maps the
// intermediate colors into the primaries, transfer function, white
// level and luminance range of the actual display, with optional
// dithering for narrow framebuffers.
package colorpass

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/coralui/coral/colors/chroma"
	"github.com/coralui/coral/colors/transfer"
	"github.com/coralui/coral/math32"
)

// PixelFormat is the pixel layout of a backend texture.
type PixelFormat int32

const (
	// RGBA is 4-channel color.
	RGBA PixelFormat = iota

	// R is single-channel.
	R

	// Depth is a depth buffer.
	Depth

	// DepthStencil is a combined depth + stencil buffer.
	DepthStencil
)

// ComponentFormat is the per-component storage format of a
// backend texture.
type ComponentFormat int32

const (
	UInt8 ComponentFormat = iota
	UInt32
	Float16
	Float32
)

// FilterMode is the texture sampling interpolation mode.
type FilterMode int32

const (
	Nearest FilterMode = iota
	Bilinear
)

// WrapMode is the texture coordinate wrapping mode.
type WrapMode int32

const (
	ClampToEdge WrapMode = iota
	Repeat
	MirrorRepeat
)

// TextureConfig specifies a texture allocation request to the backend.
type TextureConfig struct {
	Name      string
	Pixel     PixelFormat
	Component ComponentFormat
	Size      image.Point
	Filter    FilterMode
	Wrap      WrapMode

	// ShaderRead is whether shaders sample this texture.
	ShaderRead bool

	// RenderTarget is whether this texture can be rendered into.
	RenderTarget bool
}

// Texture is a backend texture handle.
type Texture interface {

	// Size returns the current size of the texture in pixels.
	Size() image.Point

	// Upload replaces the texture contents with the given raw data,
	// which must match the texture format and size.
	Upload(data []byte) error

	// Resize reallocates the texture at the given size;
	// previous contents are lost.
	Resize(size image.Point) error

	// Release frees the texture resources.
	Release()
}

// Shader is the backend instance of the full-screen color conversion
// shader installed by the pass.
type Shader interface {

	// SetTexture binds the given texture to the named sampler.
	SetTexture(name string, tx Texture) error

	// SetUniforms updates the conversion uniforms.
	SetUniforms(u *Uniforms) error

	// DrawQuad issues the two-triangle full-screen draw with this
	// shader bound, reading the intermediate texture and writing the
	// real framebuffer.
	DrawQuad() error

	// Release frees the shader resources.
	Release()
}

// Backend is the slice of the render-resource layer that the color
// pass consumes. It is implemented by the gpu package; tests use an
// in-memory fake.
type Backend interface {

	// NewTexture allocates a texture. An unsupported pixel/component
	// format combination is a programmer error and fails hard.
	NewTexture(cfg *TextureConfig) (Texture, error)

	// NewConvertShader compiles the backend's color conversion shader.
	NewConvertShader(name string) (Shader, error)

	// BeginTarget binds the given textures as the active render
	// target, so that subsequent drawing renders there instead of the
	// real framebuffer. Depth testing is forced to always-pass: a
	// depth texture is only present here to carry a stencil buffer.
	BeginTarget(color, depth Texture) error

	// EndTarget unbinds the intermediate render target.
	EndTarget() error
}

// Config specifies the color pass for one on-screen surface.
type Config struct {

	// Size is the framebuffer size in pixels.
	Size image.Point

	// BitsPerChannel is the color depth of the real framebuffer,
	// used to scale the dither noise.
	BitsPerChannel int

	// FloatBuffer is whether the real framebuffer is floating point,
	// which disables dithering and unit-interval clipping.
	FloatBuffer bool

	// DepthBuffer is whether widget rendering needs a depth buffer.
	DepthBuffer bool

	// StencilBuffer is whether widget rendering needs a stencil buffer.
	StencilBuffer bool
}

// Pass is the color management render pass for one on-screen surface.
// It owns an intermediate color texture (plus optional depth/stencil
// texture), the conversion shader, and the dither texture.
//
// Per-frame protocol: Begin, widget drawing, End, Configure, DrawQuad.
// Resize must be called between frames, never inside a Begin/End pair.
// All methods must be called on the thread owning the graphics context.
type Pass struct {
	backend Backend
	cfg     Config

	color  Texture
	depth  Texture
	dither Texture
	shader Shader

	uniforms Uniforms
	begun    bool
	active   bool
}

// New constructs the color pass: it allocates the intermediate
// render target textures and the dither texture, and compiles the
// conversion shader. A shader compilation failure disables color
// management for this surface (pass-through rendering) and is not
// fatal; texture allocation failures are.
func New(b Backend, cfg *Config) (*Pass, error) {
	p := &Pass{backend: b, cfg: *cfg}

	var err error
	p.color, err = b.NewTexture(&TextureConfig{
		Name:         "colorpass.color",
		Pixel:        RGBA,
		Component:    Float32,
		Size:         cfg.Size,
		Filter:       Nearest,
		Wrap:         ClampToEdge,
		ShaderRead:   true,
		RenderTarget: true,
	})
	if err != nil {
		return nil, fmt.Errorf("colorpass: intermediate color texture: %w", err)
	}

	if cfg.DepthBuffer || cfg.StencilBuffer {
		pf := Depth
		if cfg.StencilBuffer {
			pf = DepthStencil
		}
		p.depth, err = b.NewTexture(&TextureConfig{
			Name:         "colorpass.depth",
			Pixel:        pf,
			Component:    UInt32,
			Size:         cfg.Size,
			Filter:       Nearest,
			Wrap:         ClampToEdge,
			RenderTarget: true,
		})
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("colorpass: intermediate depth texture: %w", err)
		}
	}

	p.dither, err = b.NewTexture(&TextureConfig{
		Name:       "colorpass.dither",
		Pixel:      R,
		Component:  Float32,
		Size:       image.Point{DitherSize, DitherSize},
		Filter:     Nearest,
		Wrap:       Repeat,
		ShaderRead: true,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("colorpass: dither texture: %w", err)
	}
	if err := p.dither.Upload(ditherBytes(p.ditherScale())); err != nil {
		p.Release()
		return nil, fmt.Errorf("colorpass: dither upload: %w", err)
	}

	sh, err := b.NewConvertShader("color_management")
	if err != nil {
		// Some platforms cannot provide the expected shading feature
		// set; render without color management rather than crashing.
		slog.Warn("colorpass: conversion shader failed to compile; color management disabled", "err", err)
		p.shader = nil
		return p, nil
	}
	p.shader = sh
	if err := sh.SetTexture("dither_matrix", p.dither); err != nil {
		slog.Warn("colorpass: binding dither texture failed; color management disabled", "err", err)
		sh.Release()
		p.shader = nil
	}
	return p, nil
}

// Enabled reports whether the conversion shader is available.
// When false, the pass operates in pass-through mode: Begin, End and
// DrawQuad are no-ops and the owner renders directly to the
// framebuffer.
func (p *Pass) Enabled() bool {
	return p.shader != nil
}

// Active reports whether color management is actually transforming
// colors for this surface: true iff the display state seen by the
// last Configure deviates from the untouched default of
// {Rec.709, extended sRGB, 80 nits}.
func (p *Pass) Active() bool {
	return p.active
}

// ColorTexture returns the intermediate color texture that widget
// rendering draws into.
func (p *Pass) ColorTexture() Texture {
	return p.color
}

// Uniforms returns the conversion uniforms computed by the last
// Configure call.
func (p *Pass) Uniforms() *Uniforms {
	return &p.uniforms
}

// Begin binds the intermediate render target as the active draw
// destination; all subsequent widget drawing renders there instead of
// the real framebuffer. Must be paired with exactly one End.
func (p *Pass) Begin() error {
	if !p.Enabled() {
		return nil
	}
	if p.begun {
		return fmt.Errorf("colorpass: Begin called twice without End")
	}
	if err := p.backend.BeginTarget(p.color, p.depth); err != nil {
		return err
	}
	p.begun = true
	return nil
}

// End unbinds the intermediate render target.
func (p *Pass) End() error {
	if !p.Enabled() {
		return nil
	}
	if !p.begun {
		return fmt.Errorf("colorpass: End called without Begin")
	}
	p.begun = false
	return p.backend.EndTarget()
}

// Configure recomputes the conversion shader uniforms from the
// current display state. A positive sdrWhiteOverride takes precedence
// over the white level reported by the display. Call after End and
// before DrawQuad each frame (display state can change at runtime,
// e.g. when a window moves between monitors).
func (p *Pass) Configure(ds DisplayState, sdrWhiteOverride float32) {
	white := ds.SDRWhiteLevel
	if sdrWhiteOverride > 0 {
		white = sdrWhiteOverride
		ds.SDRWhiteLevel = sdrWhiteOverride
	}
	p.active = !ds.IsDefault()

	u := &p.uniforms
	u.SDRWhiteLevel = white
	u.OutTransferFunction = transfer.FromWindowCode(ds.TransferFunction)

	// Convert FROM Rec.709-space rendered content INTO the display's
	// native primaries.
	m, err := chroma.ToRec709Matrix(chroma.FromWindowCodeChroma(ds.Primaries))
	if err == nil {
		m, err = m.Inverse()
	}
	if err != nil {
		slog.Warn("colorpass: display color matrix is degenerate; using identity", "err", err)
		m = math32.Identity3()
	}
	u.DisplayColorMatrix = m

	u.MinLuminance = ds.MinLuminance
	u.MaxLuminance = ds.MaxLuminance

	// Float/HDR framebuffers carry out-of-range values through;
	// 8-bit SDR framebuffers are hard-clipped.
	u.ClipToUnitInterval = !p.cfg.FloatBuffer

	u.DitherScale = math32.Vector2FromPoint(p.color.Size()).DivScalar(DitherSize)

	if p.shader != nil {
		p.shader.SetTexture("framebuffer_texture", p.color)
		p.shader.SetUniforms(u)
	}
}

// DrawQuad issues the full-screen conversion draw with the shader
// bound, reading the intermediate texture and writing the real
// framebuffer. Call after Configure.
func (p *Pass) DrawQuad() error {
	if !p.Enabled() {
		return nil
	}
	if p.begun {
		return fmt.Errorf("colorpass: DrawQuad called inside Begin/End")
	}
	return p.shader.DrawQuad()
}

// Resize reallocates the intermediate textures to the new framebuffer
// dimensions. Must be called between frames, before the next Begin.
// Calling with the current size is a no-op.
func (p *Pass) Resize(size image.Point) error {
	if p.begun {
		return fmt.Errorf("colorpass: Resize called inside Begin/End")
	}
	if size == p.cfg.Size {
		return nil
	}
	if err := p.color.Resize(size); err != nil {
		return fmt.Errorf("colorpass: resize color texture: %w", err)
	}
	if p.depth != nil {
		if err := p.depth.Resize(size); err != nil {
			return fmt.Errorf("colorpass: resize depth texture: %w", err)
		}
	}
	p.cfg.Size = size
	return nil
}

// ditherScale returns the dither noise amplitude for the configured
// framebuffer: zero for float framebuffers, one quantization step for
// integer ones.
func (p *Pass) ditherScale() float32 {
	if p.cfg.FloatBuffer {
		return 0
	}
	return 1 / float32(uint32(1)<<uint32(p.cfg.BitsPerChannel))
}

// Release frees all resources owned by the pass. The pass must not be
// used afterwards.
func (p *Pass) Release() {
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
	for _, tx := range []Texture{p.color, p.depth, p.dither} {
		if tx != nil {
			tx.Release()
		}
	}
	p.color, p.depth, p.dither = nil, nil, nil
}
