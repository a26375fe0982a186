// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/coralui/coral/colorpass"
	"github.com/coralui/coral/colors/transfer"
	"github.com/coralui/coral/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		pixel     colorpass.PixelFormat
		component colorpass.ComponentFormat
		format    wgpu.TextureFormat
		bpp       int
	}{
		{colorpass.RGBA, colorpass.UInt8, wgpu.TextureFormatRGBA8Unorm, 4},
		{colorpass.RGBA, colorpass.Float16, wgpu.TextureFormatRGBA16Float, 8},
		{colorpass.RGBA, colorpass.Float32, wgpu.TextureFormatRGBA32Float, 16},
		{colorpass.R, colorpass.UInt8, wgpu.TextureFormatR8Unorm, 1},
		{colorpass.R, colorpass.Float32, wgpu.TextureFormatR32Float, 4},
		{colorpass.Depth, colorpass.UInt32, wgpu.TextureFormatDepth24Plus, 4},
		{colorpass.DepthStencil, colorpass.UInt32, wgpu.TextureFormatDepth24PlusStencil8, 4},
	}
	for _, tc := range tests {
		format, bpp, err := textureFormat(tc.pixel, tc.component)
		require.NoError(t, err)
		assert.Equal(t, tc.format, format)
		assert.Equal(t, tc.bpp, bpp)
	}

	_, _, err := textureFormat(colorpass.RGBA, colorpass.UInt32)
	assert.Error(t, err)
	_, _, err = textureFormat(colorpass.R, colorpass.Float16)
	assert.Error(t, err)
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestPackUniforms(t *testing.T) {
	var m math32.Matrix3
	m.Set(
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)
	u := &colorpass.Uniforms{
		DisplayColorMatrix:  m,
		SDRWhiteLevel:       203,
		MinLuminance:        0.005,
		MaxLuminance:        1000,
		OutTransferFunction: transfer.PQ,
		ClipToUnitInterval:  true,
		DitherScale:         math32.Vec2(80, 50),
	}
	b := packUniforms(u)
	require.Len(t, b, uniformsSize)

	// matrix columns are vec4 aligned: column c row r at (c*4+r)*4
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			assert.Equal(t, m[c*3+r], f32At(b, (c*4+r)*4))
		}
		assert.Zero(t, f32At(b, (c*4+3)*4), "column padding")
	}
	assert.Equal(t, float32(80), f32At(b, 48))
	assert.Equal(t, float32(50), f32At(b, 52))
	assert.Equal(t, float32(203), f32At(b, 56))
	assert.Equal(t, float32(0.005), f32At(b, 60))
	assert.Equal(t, float32(1000), f32At(b, 64))
	assert.Equal(t, uint32(transfer.PQ), binary.LittleEndian.Uint32(b[68:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b[72:]))

	u.ClipToUnitInterval = false
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(packUniforms(u)[72:]))
}
