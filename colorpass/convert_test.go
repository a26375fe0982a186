// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorpass

import (
	"image"
	"testing"

	"github.com/coralui/coral/base/tolassert"
	"github.com/coralui/coral/colors/transfer"
	"github.com/coralui/coral/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configured builds conversion uniforms the same way a real frame
// does: through Pass.Configure against a fake backend.
func configured(t *testing.T, cfg *Config, ds DisplayState) *Uniforms {
	t.Helper()
	p, _ := newTestPass(t, cfg)
	p.Configure(ds, 0)
	return p.Uniforms()
}

func TestConvertDefaultIsIdentity(t *testing.T) {
	var ds DisplayState
	ds.Defaults()
	u := configured(t, &Config{Size: image.Point{64, 64}, BitsPerChannel: 8}, ds)

	for _, v := range []float32{0, 0.1, 0.25, 0.5, 0.73, 1} {
		got := Convert(math32.Vec3(v, v, v), u)
		tolassert.EqualTol(t, v, got.X, 1e-4)
		tolassert.EqualTol(t, v, got.Y, 1e-4)
		tolassert.EqualTol(t, v, got.Z, 1e-4)
	}
}

func TestConvertDefaultFloatBufferPreservesRange(t *testing.T) {
	var ds DisplayState
	ds.Defaults()
	u := configured(t, &Config{Size: image.Point{64, 64}, BitsPerChannel: 16, FloatBuffer: true}, ds)

	// extended sRGB carries negatives and >1 through untouched
	for _, v := range []float32{-0.5, -0.1, 1.5, 2} {
		got := Convert(math32.Vec3(v, v, v), u)
		tolassert.EqualTol(t, v, got.X, 1e-3)
	}
}

func TestConvertClipsSDRFramebuffer(t *testing.T) {
	var ds DisplayState
	ds.Defaults()
	u := configured(t, &Config{Size: image.Point{64, 64}, BitsPerChannel: 8}, ds)

	got := Convert(math32.Vec3(2, -0.5, 0.5), u)
	assert.Equal(t, float32(1), got.X)
	assert.Equal(t, float32(0), got.Y)
	tolassert.EqualTol(t, 0.5, got.Z, 1e-4)
}

func TestConvertPQWhiteLevels(t *testing.T) {
	u := configured(t,
		&Config{Size: image.Point{64, 64}, BitsPerChannel: 10},
		DisplayState{
			Primaries:        1,
			TransferFunction: 11, // PQ
			SDRWhiteLevel:    203,
		})

	// SDR white at 203 nits encodes to the well-known PQ value
	got := Convert(math32.Vec3(1, 1, 1), u)
	tolassert.EqualTol(t, 0.583, got.X, 5e-3)

	// black stays black
	got = Convert(math32.Vec3(0, 0, 0), u)
	tolassert.EqualTol(t, 0, got.X, 1e-5)
}

func TestConvertLuminanceClamp(t *testing.T) {
	u := configured(t,
		&Config{Size: image.Point{64, 64}, BitsPerChannel: 10},
		DisplayState{
			Primaries:        1,
			TransferFunction: 11, // PQ
			SDRWhiteLevel:    400,
			MaxLuminance:     100,
		})

	// 400 nit white exceeds the 100 nit display limit and is clamped
	// to the PQ encoding of 100 nits
	got := Convert(math32.Vec3(1, 1, 1), u)
	tolassert.EqualTol(t, 0.508, got.X, 5e-3)
}

func TestConvertP3PQRoundTrip(t *testing.T) {
	hdr := DisplayState{
		Primaries:        9, // Display P3
		TransferFunction: 11,
		SDRWhiteLevel:    1000,
	}
	u := configured(t, &Config{Size: image.Point{64, 64}, BitsPerChannel: 10}, hdr)

	// invert the pipeline by hand and recover the input
	for _, in := range []math32.Vector3{
		math32.Vec3(1, 1, 1),
		math32.Vec3(0.75, 0.5, 0.25),
	} {
		out := Convert(in, u)

		inv, err := u.DisplayColorMatrix.Inverse()
		require.NoError(t, err)
		nits := out.Map(transfer.PQ.ToLinear).MulScalar(transfer.PQ.WhiteLevel())
		lin := inv.MulVector3(nits).DivScalar(u.SDRWhiteLevel)
		back := lin.Map(transfer.ExtSRGB.FromLinear)
		tolassert.EqualTol(t, in.X, back.X, 1e-3)
		tolassert.EqualTol(t, in.Y, back.Y, 1e-3)
		tolassert.EqualTol(t, in.Z, back.Z, 1e-3)
	}
}

func TestConvertDithered(t *testing.T) {
	var ds DisplayState
	ds.Defaults()
	u := configured(t, &Config{Size: image.Point{64, 64}, BitsPerChannel: 8}, ds)
	mat := DitherMatrix(1.0 / 256)

	in := math32.Vec3(0.5, 0.5, 0.5)
	plain := Convert(in, u)
	for y := 0; y < DitherSize; y++ {
		for x := 0; x < DitherSize; x++ {
			noise := DitherNoiseAt(&mat, x, y)
			got := ConvertDithered(in, u, noise)
			tolassert.EqualTol(t, plain.X+noise, got.X, 1e-6)
		}
	}

	// dithering never pushes a clipped framebuffer out of range
	got := ConvertDithered(math32.Vec3(1, 1, 1), u, mat[0])
	assert.LessOrEqual(t, got.X, float32(1))
}
