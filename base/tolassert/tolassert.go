// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of
// numbers with tolerance (in other words, it checks whether numbers are
// about equal, to within a certain difference).
package tolassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Equal asserts that the two given numbers are about equal to each other,
// within a tolerance of 0.001.
func Equal[T float32 | float64](t *testing.T, expected T, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the two given numbers are about equal to each other,
// within the given tolerance value.
func EqualTol[T float32 | float64](t *testing.T, expected T, actual T, tol T, msgAndArgs ...any) bool {
	if assert.InDelta(t, expected, actual, float64(tol), msgAndArgs...) {
		return true
	}
	return false
}
