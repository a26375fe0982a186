// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorpass

import (
	"github.com/coralui/coral/colors/transfer"
	"github.com/coralui/coral/math32"
)

// Uniforms is the set of conversion parameters computed by
// [Pass.Configure] and consumed by the conversion shader.
type Uniforms struct {

	// DisplayColorMatrix converts Rec.709 linear RGB into the
	// display's native primaries.
	DisplayColorMatrix math32.Matrix3

	// SDRWhiteLevel is the luminance in nits that intermediate
	// RGB (1,1,1) maps to.
	SDRWhiteLevel float32

	// MinLuminance and MaxLuminance bound the absolute luminance sent
	// to the display; MaxLuminance == 0 disables the clamp.
	MinLuminance float32
	MaxLuminance float32

	// OutTransferFunction encodes linear display-primaries light for
	// the display.
	OutTransferFunction transfer.Function

	// ClipToUnitInterval hard-clips the final encoded color to [0, 1],
	// applied for integer SDR framebuffers and skipped for float/HDR.
	ClipToUnitInterval bool

	// DitherScale is the UV multiplier tiling the 8x8 dither matrix
	// over the framebuffer: framebuffer size / 8.
	DitherScale math32.Vector2
}

// Convert is the CPU reference implementation of the per-pixel
// conversion performed by the shader, without dithering: the
// intermediate color (extended sRGB, 1.0 = SDR white) is decoded to
// linear, scaled to absolute nits, converted into the display's
// primaries, clamped to the display's luminance range, re-normalized
// to the output transfer function's white level and encoded with it,
// and optionally clipped to [0, 1].
func Convert(rgb math32.Vector3, u *Uniforms) math32.Vector3 {
	return ConvertDithered(rgb, u, 0)
}

// ConvertDithered is [Convert] with a per-pixel dither noise value
// (an entry of [DitherMatrix]) added before the final clip.
func ConvertDithered(rgb math32.Vector3, u *Uniforms, noise float32) math32.Vector3 {
	lin := rgb.Map(transfer.ExtSRGB.ToLinear).MulScalar(u.SDRWhiteLevel)
	nits := u.DisplayColorMatrix.MulVector3(lin)

	// Some displays tonemap strangely when handed values outside
	// their luminance range; hard clipping preserves the displayable
	// colors instead.
	if u.MaxLuminance > 0 {
		nits = nits.ClampScalar(u.MinLuminance, u.MaxLuminance)
	}

	tf := u.OutTransferFunction
	out := nits.DivScalar(tf.WhiteLevel()).Map(tf.FromLinear).AddScalar(noise)

	if u.ClipToUnitInterval {
		out = out.ClampScalar(0, 1)
	}
	return out
}

// DitherNoiseAt returns the dither noise value the shader samples for
// the pixel at (x, y), tiling the 8x8 matrix over the framebuffer.
func DitherNoiseAt(mat *[DitherSize * DitherSize]float32, x, y int) float32 {
	return mat[(y%DitherSize)*DitherSize+x%DitherSize]
}
