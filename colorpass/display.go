// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorpass

// Display state codes of the untouched default display:
// Rec.709 primaries, extended sRGB transfer, 80 nit SDR white.
const (
	// DefaultPrimariesCode is the windowing-layer code for Rec.709.
	DefaultPrimariesCode = 1

	// DefaultTransferCode is the windowing-layer code for extended sRGB.
	DefaultTransferCode = 10

	// DefaultSDRWhiteLevel is the nominal sRGB white level in nits.
	DefaultSDRWhiteLevel = 80
)

// DisplayState is the color-relevant state of the display a window is
// currently on, queried from the operating system through the
// windowing layer. The color pass only reads it.
type DisplayState struct {

	// Primaries is the windowing-layer color primaries code
	// (see [chroma.FromWindowCodeChroma]).
	Primaries int

	// TransferFunction is the windowing-layer transfer function code
	// (see [transfer.FromWindowCode]).
	TransferFunction int

	// SDRWhiteLevel is the luminance in nits that SDR white
	// (RGB 1,1,1) maps to on this display.
	SDRWhiteLevel float32

	// MinLuminance is the minimum luminance of the display in nits.
	MinLuminance float32

	// MaxLuminance is the maximum luminance of the display in nits.
	// Zero means unknown, and disables luminance clamping.
	MaxLuminance float32
}

// Defaults sets the default SDR display state: Rec.709 primaries,
// extended sRGB transfer function, 80 nit white.
func (ds *DisplayState) Defaults() {
	ds.Primaries = DefaultPrimariesCode
	ds.TransferFunction = DefaultTransferCode
	ds.SDRWhiteLevel = DefaultSDRWhiteLevel
	ds.MinLuminance = 0
	ds.MaxLuminance = 0
}

// IsDefault reports whether the display state matches the untouched
// default, in which case rendered content needs no conversion and the
// color management pass can be skipped entirely.
func (ds DisplayState) IsDefault() bool {
	return ds.Primaries == DefaultPrimariesCode &&
		ds.TransferFunction == DefaultTransferCode &&
		ds.SDRWhiteLevel == DefaultSDRWhiteLevel
}
