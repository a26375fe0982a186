// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorpass

import (
	"encoding/binary"
	"math"
)

// DitherSize is the edge length of the dither matrix.
const DitherSize = 8

// DitherMatrix returns the 8x8 Bayer ordered dither matrix,
// normalized to [-0.5, 0.5) and multiplied by scale.
// A scale of 0 produces an all-zero matrix, used when the destination
// framebuffer is floating point and needs no dithering; for an N-bit
// integer framebuffer, use scale = 1/(1<<N) so the noise spans one
// quantization step.
func DitherMatrix(scale float32) [DitherSize * DitherSize]float32 {
	if scale == 0 { // avoid -0.0 entries in the upload
		return [DitherSize * DitherSize]float32{}
	}
	mat := [DitherSize * DitherSize]float32{
		0, 32, 8, 40, 2, 34, 10, 42,
		48, 16, 56, 24, 50, 18, 58, 26,
		12, 44, 4, 36, 14, 46, 6, 38,
		60, 28, 52, 20, 62, 30, 54, 22,
		3, 35, 11, 43, 1, 33, 9, 41,
		51, 19, 59, 27, 49, 17, 57, 25,
		15, 47, 7, 39, 13, 45, 5, 37,
		63, 31, 55, 23, 61, 29, 53, 21,
	}
	for i := range mat {
		mat[i] = (mat[i]/(DitherSize*DitherSize) - 0.5) * scale
	}
	return mat
}

// ditherBytes returns the dither matrix for the given scale as
// little-endian float32 bytes, ready for texture upload.
func ditherBytes(scale float32) []byte {
	mat := DitherMatrix(scale)
	b := make([]byte, 4*len(mat))
	for i, v := range mat {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}
