// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chroma provides CIE chromaticity coordinates for the standard
// color primary sets, and derivation of RGB↔XYZ conversion matrices
// from them, as needed for display color management.
package chroma

import (
	"fmt"

	"github.com/coralui/coral/base/errors"
	"github.com/coralui/coral/math32"
)

// Chroma specifies a color space by the CIE xy chromaticity coordinates
// of its red, green and blue primaries and of its white point.
type Chroma struct {
	Red   math32.Vector2
	Green math32.Vector2
	Blue  math32.Vector2
	White math32.Vector2
}

// ErrDegenerate is returned when a set of chromaticity coordinates
// admits no finite RGB↔XYZ matrix: the primaries are collinear,
// or the white point y is (nearly) zero.
var ErrDegenerate = errors.New("chroma: degenerate chromaticities")

// Standard white points.
func WhiteD65() math32.Vector2    { return math32.Vec2(0.31271, 0.32902) }
func WhiteCenter() math32.Vector2 { return math32.Vec2(0.333333, 0.333333) }
func WhiteC() math32.Vector2      { return math32.Vec2(0.310, 0.316) }
func WhiteDCI() math32.Vector2    { return math32.Vec2(0.314, 0.351) }

// Rec709Chroma returns the Rec.709 / sRGB chromaticities with D65 white.
func Rec709Chroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.6400, 0.3300),
		Green: math32.Vec2(0.3000, 0.6000),
		Blue:  math32.Vec2(0.1500, 0.0600),
		White: WhiteD65(),
	}
}

// AdobeChroma returns the Adobe RGB (1998) chromaticities with D65 white.
func AdobeChroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.6400, 0.3300),
		Green: math32.Vec2(0.2100, 0.7100),
		Blue:  math32.Vec2(0.1500, 0.0600),
		White: WhiteD65(),
	}
}

// ProPhotoChroma returns the ProPhoto RGB (ROMM) chromaticities with D50 white.
func ProPhotoChroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.734699, 0.265301),
		Green: math32.Vec2(0.159597, 0.840403),
		Blue:  math32.Vec2(0.036598, 0.000105),
		White: math32.Vec2(0.345704, 0.358540),
	}
}

// DisplayP3Chroma returns the Display P3 chromaticities with D65 white.
func DisplayP3Chroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.6800, 0.3200),
		Green: math32.Vec2(0.2650, 0.6900),
		Blue:  math32.Vec2(0.1500, 0.0600),
		White: WhiteD65(),
	}
}

// DCIP3Chroma returns the DCI-P3 chromaticities with the DCI white point.
func DCIP3Chroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.6800, 0.3200),
		Green: math32.Vec2(0.2650, 0.6900),
		Blue:  math32.Vec2(0.1500, 0.0600),
		White: WhiteDCI(),
	}
}

// BT2020Chroma returns the BT.2020 chromaticities with D65 white.
func BT2020Chroma() Chroma {
	return Chroma{
		Red:   math32.Vec2(0.7080, 0.2920),
		Green: math32.Vec2(0.1700, 0.7970),
		Blue:  math32.Vec2(0.1310, 0.0460),
		White: WhiteD65(),
	}
}

// BT2100Chroma returns the BT.2100 chromaticities,
// which are the same as BT.2020.
func BT2100Chroma() Chroma {
	return BT2020Chroma()
}

// RGBToXYZ returns the matrix M such that M * [R,G,B] = [X,Y,Z]
// for the given chromaticities, with RGB (1,1,1) (the white point)
// mapping to luminance Y.
//
// For an explanation of how the color conversion matrix is derived,
// see Roy Hall, "Illumination and Color in Computer Generated Imagery",
// Springer-Verlag, 1989, chapter 3, "Perceptual Response"; and
// Charles A. Poynton, "A Technical Introduction to Digital Video",
// John Wiley & Sons, 1996, chapter 7, "Color science for video".
func RGBToXYZ(c Chroma, Y float32) (math32.Matrix3, error) {
	red, green, blue, white := c.Red, c.Green, c.Blue, c.White

	// prevent a division that rounds to zero
	if math32.Abs(white.Y) <= 1 &&
		math32.Abs(white.X*Y) >= math32.Abs(white.Y)*math32.MaxFloat32 {
		return math32.Identity3(), fmt.Errorf("%w: white point y cannot be zero", ErrDegenerate)
	}

	// X and Z values of RGB value (1, 1, 1), or "white"
	X := white.X * Y / white.Y
	Z := (1 - white.X - white.Y) * Y / white.Y

	// Scale factors for matrix columns: compute numerators
	// and the common denominator.
	d := red.X*(blue.Y-green.Y) +
		blue.X*(green.Y-red.Y) +
		green.X*(red.Y-blue.Y)

	srN := X*(blue.Y-green.Y) -
		green.X*(Y*(blue.Y-1)+blue.Y*(X+Z)) +
		blue.X*(Y*(green.Y-1)+green.Y*(X+Z))

	sgN := X*(red.Y-blue.Y) +
		red.X*(Y*(blue.Y-1)+blue.Y*(X+Z)) -
		blue.X*(Y*(red.Y-1)+red.Y*(X+Z))

	sbN := X*(green.Y-red.Y) -
		red.X*(Y*(green.Y-1)+green.Y*(X+Z)) +
		green.X*(Y*(red.Y-1)+red.Y*(X+Z))

	// The matrix cannot be generated if all primaries have the same
	// y value, or if they all have an x value of zero: in both cases
	// the primaries are collinear.
	if math32.Abs(d) < 1 &&
		(math32.Abs(srN) >= math32.Abs(d)*math32.MaxFloat32 ||
			math32.Abs(sgN) >= math32.Abs(d)*math32.MaxFloat32 ||
			math32.Abs(sbN) >= math32.Abs(d)*math32.MaxFloat32) {
		return math32.Identity3(), fmt.Errorf("%w: collinear primaries", ErrDegenerate)
	}

	sr := srN / d
	sg := sgN / d
	sb := sbN / d

	m := math32.Matrix3{}
	m.SetColumns(
		math32.Vec3(sr*red.X, sr*red.Y, sr*(1-red.X-red.Y)),
		math32.Vec3(sg*green.X, sg*green.Y, sg*(1-green.X-green.Y)),
		math32.Vec3(sb*blue.X, sb*blue.Y, sb*(1-blue.X-blue.Y)),
	)
	return m, nil
}

// XYZToRGB returns the inverse of [RGBToXYZ] for the given
// chromaticities and luminance Y.
func XYZToRGB(c Chroma, Y float32) (math32.Matrix3, error) {
	m, err := RGBToXYZ(c, Y)
	if err != nil {
		return m, err
	}
	return m.Inverse()
}

// ToRec709Matrix returns the matrix converting RGB values in the
// given chromaticities into Rec.709 RGB, at unit luminance.
func ToRec709Matrix(c Chroma) (math32.Matrix3, error) {
	to, err := XYZToRGB(Rec709Chroma(), 1)
	if err != nil {
		return to, err
	}
	from, err := RGBToXYZ(c, 1)
	if err != nil {
		return from, err
	}
	return to.Mul(from), nil
}
