// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/coralui/coral/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestMatrix3Identity(t *testing.T) {
	id := Identity3()
	v := Vec3(1, 2, 3)
	assert.Equal(t, v, id.MulVector3(v))
	assert.Equal(t, id, id.Mul(id))
	tolassert.Equal(t, 1, id.Determinant())
}

func TestMatrix3SetRowOrder(t *testing.T) {
	var m Matrix3
	m.Set(
		1, 2, 3,
		4, 5, 6,
		7, 8, 10,
	)
	// first row times (1, 0, 0) picks out the first column
	v := m.MulVector3(Vec3(1, 0, 0))
	assert.Equal(t, Vec3(1, 4, 7), v)
	v = m.MulVector3(Vec3(0, 1, 0))
	assert.Equal(t, Vec3(2, 5, 8), v)
}

func TestMatrix3SetColumns(t *testing.T) {
	var m Matrix3
	m.SetColumns(Vec3(1, 4, 7), Vec3(2, 5, 8), Vec3(3, 6, 10))
	var want Matrix3
	want.Set(
		1, 2, 3,
		4, 5, 6,
		7, 8, 10,
	)
	assert.Equal(t, want, m)
}

func TestMatrix3Transpose(t *testing.T) {
	var m Matrix3
	m.Set(
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)
	tt := m.Transpose().Transpose()
	assert.Equal(t, m, tt)
	assert.Equal(t, m.MulVector3(Vec3(1, 0, 0)), Vec3(1, 4, 7))
}

func TestMatrix3Inverse(t *testing.T) {
	var m Matrix3
	m.Set(
		2, 0, 1,
		0, 3, 0,
		1, 0, 1,
	)
	inv, err := m.Inverse()
	assert.NoError(t, err)
	prod := m.Mul(inv)
	id := Identity3()
	for i := range prod {
		tolassert.EqualTol(t, id[i], prod[i], 1e-5)
	}
}

func TestMatrix3InverseVectorRoundTrip(t *testing.T) {
	var m Matrix3
	m.Set(
		0.4124, 0.3576, 0.1805,
		0.2126, 0.7152, 0.0722,
		0.0193, 0.1192, 0.9505,
	)
	inv, err := m.Inverse()
	assert.NoError(t, err)
	v := Vec3(0.25, 0.5, 0.75)
	got := inv.MulVector3(m.MulVector3(v))
	tolassert.EqualTol(t, v.X, got.X, 1e-4)
	tolassert.EqualTol(t, v.Y, got.Y, 1e-4)
	tolassert.EqualTol(t, v.Z, got.Z, 1e-4)
}

func TestMatrix3InverseSingular(t *testing.T) {
	var m Matrix3
	m.Set(
		1, 2, 3,
		2, 4, 6,
		3, 6, 9,
	)
	_, err := m.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
	assert.Equal(t, float32(0), Clamp(float32(-2), 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(7), 0, 1))
	assert.Equal(t, 3, Clamp(2, 3, 5))
}

func TestFract(t *testing.T) {
	tolassert.Equal(t, 0.25, Fract(5.25))
	v := Vec2(1.5, -0.25).Fract()
	tolassert.Equal(t, 0.5, v.X)
	tolassert.Equal(t, 0.75, v.Y)
}
