// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("oops")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 3, Log1(3, New("oops")))
}

func TestMust(t *testing.T) {
	Must(nil)
	assert.Panics(t, func() { Must(New("oops")) })
	assert.Equal(t, "v", Must1("v", nil))
	assert.Panics(t, func() { Must1("v", New("oops")) })
}

func TestIgnore1(t *testing.T) {
	assert.Equal(t, 7, Ignore1(7, New("oops")))
}

func TestWrapping(t *testing.T) {
	base := New("base")
	wrapped := fmt.Errorf("outer: %w", base)
	assert.True(t, Is(wrapped, base))
	assert.Equal(t, base, Unwrap(wrapped))
	assert.Error(t, Join(nil, base))
}
