// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"testing"

	"github.com/coralui/coral/base/tolassert"
	"github.com/coralui/coral/math32"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	for _, tf := range Functions() {
		for i := 0; i <= 64; i++ {
			enc := float32(i) / 64
			lin := tf.ToLinear(enc)
			got := tf.FromLinear(lin)
			tolassert.EqualTol(t, enc, got, 2e-3, "%s at %v", tf, enc)
		}
	}
}

func TestExtendedRangeMirrored(t *testing.T) {
	for _, tf := range []Function{ExtSRGB, XVYCC, ExtLinear} {
		for _, enc := range []float32{-1, -0.5, -0.25, -0.04} {
			lin := tf.ToLinear(enc)
			assert.Less(t, lin, float32(0), tf.String())
			tolassert.EqualTol(t, -tf.ToLinear(-enc), lin, 1e-6, tf.String())
			tolassert.EqualTol(t, enc, tf.FromLinear(lin), 1e-3, tf.String())
		}
	}
}

func TestZeroAndOneFixedPoints(t *testing.T) {
	for _, tf := range Functions() {
		tolassert.EqualTol(t, 0, tf.ToLinear(0), 1e-6, tf.String())
		if tf == ST428 {
			continue // peaks at 52.37/48, not 1
		}
		tolassert.EqualTol(t, 1, tf.ToLinear(1), 2e-3, tf.String())
		tolassert.EqualTol(t, 1, tf.FromLinear(1), 2e-3, tf.String())
	}
}

func TestSRGBAnchors(t *testing.T) {
	// 0.5 encoded sRGB is about 21.4% linear
	tolassert.EqualTol(t, 0.2140, SRGB.ToLinear(0.5), 1e-3)
	// the linear segment
	tolassert.EqualTol(t, 0.0309/12.92, SRGB.ToLinear(0.0309), 1e-5)
	tolassert.EqualTol(t, 0.002*12.92, SRGB.FromLinear(0.002), 1e-5)
}

func TestPQAnchors(t *testing.T) {
	// PQ reaches exactly 1.0 at 10000 nits (linear 1.0)
	tolassert.EqualTol(t, 1, PQ.FromLinear(1), 1e-4)
	tolassert.EqualTol(t, 1, PQ.ToLinear(1), 1e-4)
	// 100 nits (linear 0.01) encodes near 0.508
	tolassert.EqualTol(t, 0.5081, PQ.FromLinear(0.01), 1e-3)
	assert.Equal(t, float32(0), PQ.ToLinear(0))
}

func TestHLGAnchors(t *testing.T) {
	// encoded 0.5 is the curve breakpoint at linear 1/12
	tolassert.EqualTol(t, 1.0/12, HLG.ToLinear(0.5), 1e-5)
	tolassert.EqualTol(t, 0.5, HLG.FromLinear(1.0/12), 1e-5)
	tolassert.EqualTol(t, 1, HLG.ToLinear(1), 2e-3)
}

func TestLogCutoffs(t *testing.T) {
	assert.Equal(t, float32(0), Log100.ToLinear(0))
	assert.Equal(t, float32(0), Log100.FromLinear(0.01))
	tolassert.EqualTol(t, 0.02, Log100.ToLinear(Log100.FromLinear(0.02)), 1e-4)
	assert.Equal(t, float32(0), Log316.FromLinear(0.003))
	tolassert.EqualTol(t, 1, Log316.FromLinear(1), 1e-5)
}

func TestST428Anchors(t *testing.T) {
	tolassert.EqualTol(t, 52.37/48.0, ST428.ToLinear(1), 1e-4)
	tolassert.EqualTol(t, 1, ST428.FromLinear(52.37/48.0), 1e-4)
}

func TestWhiteLevel(t *testing.T) {
	assert.Equal(t, float32(10000), PQ.WhiteLevel())
	assert.Equal(t, float32(1000), HLG.WhiteLevel())
	assert.Equal(t, float32(100), BT1886.WhiteLevel())
	assert.Equal(t, float32(100), XVYCC.WhiteLevel())
	for _, tf := range []Function{Gamma22, Gamma28, ST240, ExtLinear,
		Log100, Log316, SRGB, ExtSRGB, ST428} {
		assert.Equal(t, float32(80), tf.WhiteLevel(), tf.String())
	}
}

func TestFromWindowCode(t *testing.T) {
	for _, tf := range Functions() {
		assert.Equal(t, tf, FromWindowCode(int(tf)))
	}
	// unknown codes fall back to sRGB
	assert.Equal(t, SRGB, FromWindowCode(0))
	assert.Equal(t, SRGB, FromWindowCode(99))
}

func TestValid(t *testing.T) {
	for _, tf := range Functions() {
		assert.True(t, tf.Valid(), tf.String())
	}
	assert.False(t, Function(0).Valid())
	assert.False(t, Function(14).Valid())
}

func TestNegativeClampedCurves(t *testing.T) {
	// the power-law curves clamp negatives to zero rather than NaN
	for _, tf := range []Function{Gamma22, Gamma28, ST428, PQ} {
		assert.False(t, math32.IsNaN(tf.ToLinear(-0.5)), tf.String())
		assert.False(t, math32.IsNaN(tf.FromLinear(-0.5)), tf.String())
	}
}
