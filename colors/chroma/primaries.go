// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroma

import (
	"fmt"
	"log/slog"

	"github.com/coralui/coral/math32"
)

// Primaries is an ITU-T H.273 ColourPrimaries code identifying a
// standard named set of chromaticity coordinates.
// See https://www.itu.int/rec/T-REC-H.273 (partial implementation).
type Primaries int32

const (
	// BT709 is Rec. ITU-R BT.709-6, also used by sRGB.
	BT709 Primaries = 1

	// Unspecified means the primaries are unknown or determined
	// by the application.
	Unspecified Primaries = 2

	// BT470M is Rec. ITU-R BT.470-6 System M (NTSC 1953).
	BT470M Primaries = 4

	// BT470BG is Rec. ITU-R BT.470-6 System B, G (PAL/SECAM).
	BT470BG Primaries = 5

	// SMPTE170M is SMPTE ST 170 (NTSC 1987).
	SMPTE170M Primaries = 6

	// SMPTE240M is SMPTE ST 240; functionally identical to [SMPTE170M].
	SMPTE240M Primaries = 7

	// Film is generic film with Illuminant C.
	Film Primaries = 8

	// BT2020 is Rec. ITU-R BT.2020-2 / BT.2100-2.
	BT2020 Primaries = 9

	// SMPTE428 is SMPTE ST 428-1 (CIE XYZ with equal-energy white).
	SMPTE428 Primaries = 10

	// SMPTE431 is SMPTE RP 431-2 (DCI-P3).
	SMPTE431 Primaries = 11

	// SMPTE432 is SMPTE EG 432-1 (Display P3 with D65 white).
	SMPTE432 Primaries = 12

	// Weird is EBU Tech. 3213-E, a rarely seen set kept for
	// completeness of the H.273 table.
	Weird Primaries = 22
)

// String returns the lower-case name of the primaries code.
func (p Primaries) String() string {
	switch p {
	case BT709:
		return "bt709"
	case Unspecified:
		return "unspecified"
	case BT470M:
		return "bt470m"
	case BT470BG:
		return "bt470bg"
	case SMPTE170M:
		return "smpte170m"
	case SMPTE240M:
		return "smpte240m"
	case Film:
		return "film"
	case BT2020:
		return "bt2020"
	case SMPTE428:
		return "smpte428"
	case SMPTE431:
		return "smpte431"
	case SMPTE432:
		return "smpte432"
	case Weird:
		return "weird"
	}
	return "invalid"
}

// Chroma returns the chromaticity coordinates for the primaries code.
// Unknown and Unspecified codes fall back to Rec.709 with a logged
// diagnostic; rendering continues.
func (p Primaries) Chroma() Chroma {
	switch p {
	case BT709:
		return Rec709Chroma()
	case Unspecified:
		slog.Warn("chroma: unspecified color primaries; using Rec.709")
		return Rec709Chroma()
	case BT470M:
		return Chroma{
			Red:   math32.Vec2(0.6700, 0.3300),
			Green: math32.Vec2(0.2100, 0.7100),
			Blue:  math32.Vec2(0.1400, 0.0800),
			White: WhiteC(),
		}
	case BT470BG:
		return Chroma{
			Red:   math32.Vec2(0.6400, 0.3300),
			Green: math32.Vec2(0.2900, 0.6000),
			Blue:  math32.Vec2(0.1500, 0.0600),
			White: WhiteD65(),
		}
	case SMPTE170M, SMPTE240M:
		return Chroma{
			Red:   math32.Vec2(0.6300, 0.3400),
			Green: math32.Vec2(0.3100, 0.5950),
			Blue:  math32.Vec2(0.1550, 0.0700),
			White: WhiteD65(),
		}
	case Film:
		return Chroma{
			Red:   math32.Vec2(0.6810, 0.3190), // Wratten 25
			Green: math32.Vec2(0.2430, 0.6920), // Wratten 58
			Blue:  math32.Vec2(0.1450, 0.0490), // Wratten 47
			White: WhiteC(),
		}
	case BT2020:
		return BT2020Chroma()
	case SMPTE428:
		return Chroma{
			Red:   math32.Vec2(1, 0),
			Green: math32.Vec2(0, 1),
			Blue:  math32.Vec2(0, 0),
			White: WhiteCenter(),
		}
	case SMPTE431:
		return DCIP3Chroma()
	case SMPTE432:
		return DisplayP3Chroma()
	case Weird:
		return Chroma{
			Red:   math32.Vec2(0.6300, 0.3400),
			Green: math32.Vec2(0.2950, 0.6050),
			Blue:  math32.Vec2(0.1550, 0.0770),
			White: WhiteD65(),
		}
	}
	slog.Warn("chroma: unknown color primaries; using Rec.709", "code", int32(p))
	return Rec709Chroma()
}

// AdobeWindowCode is the out-of-standard window primaries code used
// for Adobe RGB (1998), which is not in the H.273 table.
const AdobeWindowCode = 10

// FromWindowCode maps a windowing-layer primaries code (as reported
// for a window's display) to the corresponding H.273 [Primaries].
// An error is returned for unknown codes.
func FromWindowCode(code int) (Primaries, error) {
	switch code {
	case 1:
		return BT709, nil
	case 2:
		return BT470M, nil
	case 3:
		return BT470BG, nil
	case 4:
		return SMPTE170M, nil
	case 5:
		return Film, nil
	case 6:
		return BT2020, nil
	case 7:
		return SMPTE428, nil
	case 8:
		return SMPTE431, nil
	case 9:
		return SMPTE432, nil
	}
	return BT709, fmt.Errorf("chroma: unknown window color primaries code: %d", code)
}

// FromWindowCodeChroma returns the chromaticity coordinates for a
// windowing-layer primaries code. [AdobeWindowCode] returns the Adobe
// RGB chromaticities directly, bypassing the H.273 table; unknown
// codes fall back to Rec.709 with a logged diagnostic.
func FromWindowCodeChroma(code int) Chroma {
	if code == AdobeWindowCode {
		return AdobeChroma()
	}
	p, err := FromWindowCode(code)
	if err != nil {
		slog.Warn("chroma: unknown window color primaries; using Rec.709", "code", code)
		return Rec709Chroma()
	}
	return p.Chroma()
}

// WindowCodeString returns a descriptive name for a windowing-layer
// primaries code.
func WindowCodeString(code int) string {
	if code == AdobeWindowCode {
		return "adobe_rgb"
	}
	p, err := FromWindowCode(code)
	if err != nil {
		return "invalid"
	}
	return p.String()
}
