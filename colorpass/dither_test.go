// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorpass

import (
	"testing"

	"github.com/coralui/coral/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestDitherMatrixRange(t *testing.T) {
	scale := float32(1) / 256
	mat := DitherMatrix(scale)
	for i, v := range mat {
		assert.GreaterOrEqual(t, v, -scale/2, "index %d", i)
		assert.Less(t, v, scale/2, "index %d", i)
	}
}

func TestDitherMatrixMean(t *testing.T) {
	// the 64 levels are 0..63, so the tile mean is (31.5/64 - 0.5)
	mat := DitherMatrix(1)
	var sum float32
	for _, v := range mat {
		sum += v
	}
	tolassert.EqualTol(t, -0.5/64, sum/64, 1e-6)
}

func TestDitherMatrixDistinct(t *testing.T) {
	// every pixel of the tile gets a distinct threshold
	mat := DitherMatrix(1)
	seen := map[float32]bool{}
	for _, v := range mat {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Len(t, seen, DitherSize*DitherSize)
}

func TestDitherMatrixZeroScale(t *testing.T) {
	mat := DitherMatrix(0)
	for _, v := range mat {
		assert.Zero(t, v)
	}
	// the upload must be all-zero bytes too: a -0.0 entry would
	// encode with the sign bit set
	for i, b := range ditherBytes(0) {
		assert.Zero(t, b, "byte %d", i)
	}
}

func TestDitherNoiseAt(t *testing.T) {
	mat := DitherMatrix(1)
	// tiles with period 8 in both directions
	assert.Equal(t, mat[0], DitherNoiseAt(&mat, 8, 16))
	assert.Equal(t, mat[9], DitherNoiseAt(&mat, 1, 1))
	assert.Equal(t, DitherNoiseAt(&mat, 3, 5), DitherNoiseAt(&mat, 11, 13))
}

func TestDitherBytes(t *testing.T) {
	b := ditherBytes(1.0 / 256)
	assert.Len(t, b, DitherSize*DitherSize*4)
}
