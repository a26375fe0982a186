// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/coralui/coral/colorpass"
)

//go:embed shaders/colorconvert.wgsl
var colorConvertWGSL string

// uniformsSize is the WGSL std140-style size of the conversion
// uniform block: a mat3x3 occupies three vec4-aligned columns (48
// bytes), followed by dither scale, white level, luminance bounds,
// transfer function code, clip flag and padding.
const uniformsSize = 80

// convertShader implements [colorpass.Shader]: the full-screen color
// conversion pipeline plus its buffers and bindings.
type convertShader struct {
	r *Renderer

	module   *wgpu.ShaderModule
	layout   *wgpu.BindGroupLayout
	pipeline *wgpu.RenderPipeline

	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	uniformBuffer *wgpu.Buffer

	framebuffer *wgpu.TextureView
	dither      *wgpu.TextureView
	group       *wgpu.BindGroup
}

// NewConvertShader implements [colorpass.Backend].
func (r *Renderer) NewConvertShader(name string) (colorpass.Shader, error) {
	sh := &convertShader{r: r}
	if err := sh.init(name); err != nil {
		sh.Release()
		return nil, err
	}
	return sh, nil
}

func (sh *convertShader) init(name string) error {
	dev := sh.r.gp.Device

	module, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: colorConvertWGSL},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile %s shader: %w", name, err)
	}
	sh.module = module

	// Float32 textures are not filterable without an optional device
	// feature; the shader uses textureLoad so nothing needs filtering.
	texLayout := wgpu.TextureBindingLayout{
		SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
		ViewDimension: wgpu.TextureViewDimension2D,
	}
	layout, err := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: name,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformsSize,
				},
			},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment, Texture: texLayout},
			{Binding: 2, Visibility: wgpu.ShaderStageFragment, Texture: texLayout},
		},
	})
	if err != nil {
		return err
	}
	sh.layout = layout

	plLayout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            name,
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return err
	}
	defer plLayout.Release()

	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  name,
		Layout: plLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: 8,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{{
					Format:         wgpu.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: 0,
				}},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    sh.r.Format(),
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: %s pipeline: %w", name, err)
	}
	sh.pipeline = pipeline

	// full-screen quad in clip space
	positions := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	sh.vertexBuffer, err = dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + ".vertex",
		Contents: wgpu.ToBytes(positions),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return err
	}
	sh.indexBuffer, err = dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + ".index",
		Contents: wgpu.ToBytes([]uint32{0, 1, 2, 2, 3, 0}),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return err
	}
	sh.uniformBuffer, err = dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + ".uniforms",
		Contents: make([]byte, uniformsSize),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	return err
}

// SetTexture implements [colorpass.Shader].
func (sh *convertShader) SetTexture(name string, tx colorpass.Texture) error {
	gt, ok := tx.(*Texture)
	if !ok {
		return fmt.Errorf("gpu: SetTexture %q: not a gpu texture", name)
	}
	switch name {
	case "framebuffer_texture":
		if sh.framebuffer == gt.View() {
			return nil
		}
		sh.framebuffer = gt.View()
	case "dither_matrix":
		if sh.dither == gt.View() {
			return nil
		}
		sh.dither = gt.View()
	default:
		return fmt.Errorf("gpu: SetTexture: unknown binding %q", name)
	}
	// texture changed; rebuild the bind group on next draw
	if sh.group != nil {
		sh.group.Release()
		sh.group = nil
	}
	return nil
}

// packUniforms lays a [colorpass.Uniforms] out in the shader's
// uniform block format.
func packUniforms(u *colorpass.Uniforms) []byte {
	var w [uniformsSize / 4]uint32
	for c := 0; c < 3; c++ { // vec4-aligned matrix columns
		for r := 0; r < 3; r++ {
			w[c*4+r] = math.Float32bits(u.DisplayColorMatrix[c*3+r])
		}
	}
	w[12] = math.Float32bits(u.DitherScale.X)
	w[13] = math.Float32bits(u.DitherScale.Y)
	w[14] = math.Float32bits(u.SDRWhiteLevel)
	w[15] = math.Float32bits(u.MinLuminance)
	w[16] = math.Float32bits(u.MaxLuminance)
	w[17] = uint32(int32(u.OutTransferFunction))
	if u.ClipToUnitInterval {
		w[18] = 1
	}
	buf := make([]byte, uniformsSize)
	for i, v := range w {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// SetUniforms implements [colorpass.Shader].
func (sh *convertShader) SetUniforms(u *colorpass.Uniforms) error {
	return sh.r.gp.Queue.WriteBuffer(sh.uniformBuffer, 0, packUniforms(u))
}

// bindGroup returns the current bind group, rebuilding it if a bound
// texture changed since the last draw.
func (sh *convertShader) bindGroup() *wgpu.BindGroup {
	if sh.group != nil {
		return sh.group
	}
	group, err := sh.r.gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "color_management",
		Layout: sh.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: sh.uniformBuffer, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: sh.framebuffer},
			{Binding: 2, TextureView: sh.dither},
		},
	})
	if err == nil {
		sh.group = group
	}
	return sh.group
}

// DrawQuad implements [colorpass.Shader].
func (sh *convertShader) DrawQuad() error {
	if sh.framebuffer == nil || sh.dither == nil {
		return fmt.Errorf("gpu: DrawQuad before textures are bound")
	}
	if sh.bindGroup() == nil {
		return fmt.Errorf("gpu: DrawQuad: bind group creation failed")
	}
	return sh.r.presentQuad(sh)
}

// Release implements [colorpass.Shader].
func (sh *convertShader) Release() {
	if sh.group != nil {
		sh.group.Release()
		sh.group = nil
	}
	if sh.uniformBuffer != nil {
		sh.uniformBuffer.Release()
		sh.uniformBuffer = nil
	}
	if sh.indexBuffer != nil {
		sh.indexBuffer.Release()
		sh.indexBuffer = nil
	}
	if sh.vertexBuffer != nil {
		sh.vertexBuffer.Release()
		sh.vertexBuffer = nil
	}
	if sh.pipeline != nil {
		sh.pipeline.Release()
		sh.pipeline = nil
	}
	if sh.layout != nil {
		sh.layout.Release()
		sh.layout = nil
	}
	if sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}
