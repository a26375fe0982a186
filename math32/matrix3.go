// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "errors"

// ErrSingular is returned when attempting to invert a singular
// (non-invertible) matrix.
var ErrSingular = errors.New("math32: matrix is singular, cannot invert")

// Matrix3 is a 3x3 matrix stored in column-major order:
// element at row r, column c is m[c*3+r].
// Column 0 is m[0:3], column 1 is m[3:6], column 2 is m[6:9].
type Matrix3 [9]float32

// Identity3 returns a new 3x3 identity matrix.
func Identity3() Matrix3 {
	m := Matrix3{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix to the identity matrix.
func (m *Matrix3) SetIdentity() {
	m.Set(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

// Set sets all the elements of this matrix row by row starting at
// row 1, column 1, with the arguments in standard written order.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float32) {
	m[0] = n11
	m[3] = n12
	m[6] = n13
	m[1] = n21
	m[4] = n22
	m[7] = n23
	m[2] = n31
	m[5] = n32
	m[8] = n33
}

// SetColumns sets the columns of this matrix from the given vectors.
func (m *Matrix3) SetColumns(c0, c1, c2 Vector3) {
	m[0], m[1], m[2] = c0.X, c0.Y, c0.Z
	m[3], m[4], m[5] = c1.X, c1.Y, c1.Z
	m[6], m[7], m[8] = c2.X, c2.Y, c2.Z
}

// Mul returns this matrix times the other matrix (this * other),
// such that the other transformation is applied first when
// multiplying a vector.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	nm := Matrix3{}
	nm.MulMatrices(m, other)
	return nm
}

// MulMatrices sets this matrix to a * b.
func (m *Matrix3) MulMatrices(a, b Matrix3) {
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			m[c*3+r] = a[r]*b[c*3] + a[3+r]*b[c*3+1] + a[6+r]*b[c*3+2]
		}
	}
}

// MulVector3 returns the given vector multiplied by this matrix
// (matrix * vector).
func (m Matrix3) MulVector3(v Vector3) Vector3 {
	return Vec3(
		m[0]*v.X+m[3]*v.Y+m[6]*v.Z,
		m[1]*v.X+m[4]*v.Y+m[7]*v.Z,
		m[2]*v.X+m[5]*v.Y+m[8]*v.Z,
	)
}

// Transpose returns the transpose of this matrix.
func (m Matrix3) Transpose() Matrix3 {
	nm := m
	nm[1], nm[3] = m[3], m[1]
	nm[2], nm[6] = m[6], m[2]
	nm[5], nm[7] = m[7], m[5]
	return nm
}

// Determinant returns the determinant of this matrix.
func (m Matrix3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of this matrix.
// It returns [ErrSingular] and the identity matrix
// if the matrix cannot be inverted.
func (m Matrix3) Inverse() (Matrix3, error) {
	det := m.Determinant()
	if det == 0 {
		return Identity3(), ErrSingular
	}
	idet := 1 / det
	nm := Matrix3{}
	nm[0] = (m[4]*m[8] - m[7]*m[5]) * idet
	nm[1] = (m[7]*m[2] - m[1]*m[8]) * idet
	nm[2] = (m[1]*m[5] - m[4]*m[2]) * idet
	nm[3] = (m[6]*m[5] - m[3]*m[8]) * idet
	nm[4] = (m[0]*m[8] - m[6]*m[2]) * idet
	nm[5] = (m[3]*m[2] - m[0]*m[5]) * idet
	nm[6] = (m[3]*m[7] - m[6]*m[4]) * idet
	nm[7] = (m[6]*m[1] - m[0]*m[7]) * idet
	nm[8] = (m[0]*m[4] - m[3]*m[1]) * idet
	return nm, nil
}
