// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transfer implements the ITU-T H.273 display transfer
// functions as forward/inverse pairs with their nominal reference
// white levels, as used by display color management.
//
// The primary source for these curves is ITU-R BT.1361 and the
// individual SMPTE/ITU standards named per function. Values of 1.0
// correspond to the nominal reference white of each function, which
// differs between them: see [Function.WhiteLevel].
package transfer

import (
	"log/slog"

	"github.com/coralui/coral/math32"
)

// Function is an ITU-T H.273 TransferCharacteristics-style code
// identifying a display transfer function. The codes match the
// windowing layer's CM_TRANSFER_FUNCTION_* values.
type Function int32

const (
	// BT1886 is the Rec. ITU-R BT.1886 OETF (gamma 1/0.45 with
	// linear toe).
	BT1886 Function = 1

	// Gamma22 is a pure 2.2 power law.
	Gamma22 Function = 2

	// Gamma28 is a pure 2.8 power law.
	Gamma28 Function = 3

	// ST240 is SMPTE ST 240.
	ST240 Function = 4

	// ExtLinear is extended-range linear (identity).
	ExtLinear Function = 5

	// Log100 is logarithmic with a 100:1 range.
	Log100 Function = 6

	// Log316 is logarithmic with a 316.23:1 (100*sqrt(10):1) range.
	Log316 Function = 7

	// XVYCC is IEC 61966-2-4: BT.1886 mirrored around 0.
	XVYCC Function = 8

	// SRGB is IEC 61966-2-1 sRGB.
	SRGB Function = 9

	// ExtSRGB is extended-range sRGB: the sRGB curve mirrored
	// around 0 (scRGB).
	ExtSRGB Function = 10

	// PQ is SMPTE ST 2084 / BT.2100 perceptual quantizer.
	PQ Function = 11

	// ST428 is SMPTE ST 428-1 (DCDM, gamma 2.6 with 52.37/48 scale).
	ST428 Function = 12

	// HLG is ARIB STD-B67 / BT.2100 hybrid log-gamma.
	HLG Function = 13
)

// String returns the lower-case name of the transfer function.
func (tf Function) String() string {
	switch tf {
	case BT1886:
		return "bt1886"
	case Gamma22:
		return "gamma22"
	case Gamma28:
		return "gamma28"
	case ST240:
		return "st240"
	case ExtLinear:
		return "ext_linear"
	case Log100:
		return "log100"
	case Log316:
		return "log316"
	case XVYCC:
		return "xvycc"
	case SRGB:
		return "srgb"
	case ExtSRGB:
		return "ext_srgb"
	case PQ:
		return "st2084_pq"
	case ST428:
		return "st428"
	case HLG:
		return "hlg"
	}
	return "invalid"
}

// Functions lists all defined transfer functions.
func Functions() []Function {
	return []Function{BT1886, Gamma22, Gamma28, ST240, ExtLinear, Log100,
		Log316, XVYCC, SRGB, ExtSRGB, PQ, ST428, HLG}
}

// FromWindowCode maps a windowing-layer transfer function code to a
// [Function]. Unknown codes fall back to [SRGB] with a logged
// diagnostic; rendering continues.
func FromWindowCode(code int) Function {
	tf := Function(code)
	switch tf {
	case BT1886, Gamma22, Gamma28, ST240, ExtLinear, Log100, Log316,
		XVYCC, SRGB, ExtSRGB, PQ, ST428, HLG:
		return tf
	}
	slog.Warn("transfer: unknown transfer function; using sRGB", "code", code)
	return SRGB
}

// Valid reports whether the code is one of the defined functions.
func (tf Function) Valid() bool {
	return tf >= BT1886 && tf <= HLG
}

// Linear segment + power law constants. Several transfer functions
// (including sRGB) share this pattern: a linear segment for small
// values and a power function above a threshold.
const (
	srgbPow   = 2.4
	srgbCut   = 0.0031308
	srgbScale = 12.92
	srgbAlpha = 1.055

	bt1886Pow   = 1.0 / 0.45
	bt1886Cut   = 0.018053968510807
	bt1886Scale = 4.5
	bt1886Alpha = 1.0 + 5.5*bt1886Cut

	// See SMPTE ST 240M.
	st240Pow   = 1.0 / 0.45
	st240Cut   = 0.0228
	st240Scale = 4.0
	st240Alpha = 1.1115
)

// SMPTE ST 428-1 constants.
const (
	st428Pow   = 2.6
	st428Scale = 52.37 / 48.0
)

// SMPTE ST 2084 (PQ) constants.
const (
	pqM1 = 0.1593017578125
	pqM2 = 78.84375
	pqC1 = 0.8359375
	pqC2 = 18.8515625
	pqC3 = 18.6875
)

// ARIB STD-B67 (HLG) constants.
const (
	hlgDecodeCut = 1.0 / 12.0
	hlgEncodeCut = 0.5
	hlgA         = 0.17883277
	hlgB         = 0.28466892
	hlgC         = 0.55991073
)

// toLinearLinPow is the decoding (display → linear) side of the
// shared linear segment + power law family.
func toLinearLinPow(x, gamma, thres, scale, alpha float32) float32 {
	if x <= thres*scale {
		return x / scale
	}
	return math32.Pow((x+alpha-1)/alpha, gamma)
}

// fromLinearLinPow is the encoding (linear → display) side of the
// shared linear segment + power law family.
func fromLinearLinPow(x, gamma, thres, scale, alpha float32) float32 {
	if x <= thres {
		return x * scale
	}
	return math32.Pow(x, 1/gamma)*alpha - (alpha - 1)
}

// mirrored applies f to the magnitude of x, preserving sign,
// for the extended-range transfer functions.
func mirrored(f func(x float32) float32, x float32) float32 {
	return math32.Sign(x) * f(math32.Abs(x))
}

func toLinearSRGB(x float32) float32 {
	return toLinearLinPow(x, srgbPow, srgbCut, srgbScale, srgbAlpha)
}

func fromLinearSRGB(x float32) float32 {
	return fromLinearLinPow(x, srgbPow, srgbCut, srgbScale, srgbAlpha)
}

func toLinearBT1886(x float32) float32 {
	return toLinearLinPow(x, bt1886Pow, bt1886Cut, bt1886Scale, bt1886Alpha)
}

func fromLinearBT1886(x float32) float32 {
	return fromLinearLinPow(x, bt1886Pow, bt1886Cut, bt1886Scale, bt1886Alpha)
}

func toLinearPQ(x float32) float32 {
	e := math32.Pow(math32.Max(x, 0), 1/pqM2)
	return math32.Pow(
		math32.Max(e-pqC1, 0)/math32.Max(pqC2-pqC3*e, 1e-5),
		1/pqM1,
	)
}

func fromLinearPQ(x float32) float32 {
	e := math32.Pow(math32.Max(x, 0), pqM1)
	return math32.Pow(
		(pqC1+pqC2*e)/math32.Max(1+pqC3*e, 1e-5),
		pqM2,
	)
}

func toLinearHLG(x float32) float32 {
	if x <= hlgEncodeCut {
		return x * x / 3
	}
	return (math32.Exp((x-hlgC)/hlgA) + hlgB) / 12
}

func fromLinearHLG(x float32) float32 {
	if x <= hlgDecodeCut {
		return math32.Sqrt(math32.Max(x, 0) * 3)
	}
	return hlgA*math32.Log(math32.Max(12*x-hlgB, 1e-4)) + hlgC
}

// ToLinear converts a display-encoded value to linear light,
// normalized such that 1.0 is the nominal reference white of
// this transfer function.
func (tf Function) ToLinear(x float32) float32 {
	switch tf {
	case ExtLinear:
		return x
	case PQ:
		return toLinearPQ(x)
	case Gamma22:
		return math32.Pow(math32.Max(x, 0), 2.2)
	case Gamma28:
		return math32.Pow(math32.Max(x, 0), 2.8)
	case HLG:
		return toLinearHLG(x)
	case ExtSRGB:
		return mirrored(toLinearSRGB, x)
	case BT1886:
		return toLinearBT1886(x)
	case ST240:
		return toLinearLinPow(x, st240Pow, st240Cut, st240Scale, st240Alpha)
	case Log100:
		if x <= 0 {
			return 0
		}
		return math32.Exp((x - 1) * 2 * math32.Ln10)
	case Log316:
		if x <= 0 {
			return 0
		}
		return math32.Exp((x - 1) * 2.5 * math32.Ln10)
	case XVYCC:
		return mirrored(toLinearBT1886, x)
	case ST428:
		return math32.Pow(math32.Max(x, 0), st428Pow) * st428Scale
	case SRGB:
		return toLinearSRGB(x)
	}
	return toLinearSRGB(x)
}

// FromLinear converts a linear light value (1.0 = nominal reference
// white) to the display-encoded value; it is the inverse of
// [Function.ToLinear].
func (tf Function) FromLinear(x float32) float32 {
	switch tf {
	case ExtLinear:
		return x
	case PQ:
		return fromLinearPQ(x)
	case Gamma22:
		return math32.Pow(math32.Max(x, 0), 1/2.2)
	case Gamma28:
		return math32.Pow(math32.Max(x, 0), 1/2.8)
	case HLG:
		return fromLinearHLG(x)
	case ExtSRGB:
		return mirrored(fromLinearSRGB, x)
	case BT1886:
		return fromLinearBT1886(x)
	case ST240:
		return fromLinearLinPow(x, st240Pow, st240Cut, st240Scale, st240Alpha)
	case Log100:
		if x <= 0.01 {
			return 0
		}
		return 1 + math32.Log10(x)/2
	case Log316:
		if x <= math32.Sqrt(10)/1000 {
			return 0
		}
		return 1 + math32.Log10(x)/2.5
	case XVYCC:
		return mirrored(fromLinearBT1886, x)
	case ST428:
		return math32.Pow(math32.Max(x, 0)/st428Scale, 1/st428Pow)
	case SRGB:
		return fromLinearSRGB(x)
	}
	return fromLinearSRGB(x)
}

// WhiteLevel returns the nominal reference white level of this
// transfer function in nits (cd/m²): the absolute luminance that an
// encoded value of 1.0 corresponds to.
func (tf Function) WhiteLevel() float32 {
	switch tf {
	case PQ:
		return 10000
	case HLG:
		return 1000
	case BT1886, XVYCC:
		return 100
	}
	return 80
}
