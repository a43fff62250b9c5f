// Package colorspace converts sRGB hex colors to CIE L*a*b* and measures
// perceptual distance between them.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat reports a string that does not name an sRGB color.
var ErrInvalidColorFormat = errors.New("invalid color format")

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// XYZ is a CIE 1931 tristimulus value under the D65 illuminant.
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE 1976 L*a*b* color relative to the D65 reference white.
// L runs 0 to 100.
type Lab struct {
	L, A, B float64
}

// D65 reference white
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// sRGB to XYZ, D65
var srgbMatrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// HexToRGB parses a hex color such as "#8aa3b5", "8AA3B5" or the shorthand
// "#abc" into its 8-bit channels. Surrounding whitespace and a leading "#"
// are dropped, and 3-digit colors expand each digit, so "#abc" and "#aabbcc"
// name the same color.
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	s = strings.TrimPrefix(s, "#")

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q is not a 3 or 6 digit hex color", ErrInvalidColorFormat, hex)
	}

	v, e := strconv.ParseUint(s, 16, 32)
	if e != nil {
		return RGB{}, fmt.Errorf("%w: %q is not a 3 or 6 digit hex color", ErrInvalidColorFormat, hex)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HexToLab parses a hex color and converts it to L*a*b*.
func HexToLab(hex string) (Lab, error) {
	rgb, e := HexToRGB(hex)
	if e != nil {
		return Lab{}, e
	}
	return rgb.Lab(), nil
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// XYZ converts to CIE XYZ.
func (c RGB) XYZ() XYZ {
	r := linearize(float64(c.R) / 255)
	g := linearize(float64(c.G) / 255)
	b := linearize(float64(c.B) / 255)

	return XYZ{
		X: srgbMatrix[0][0]*r + srgbMatrix[0][1]*g + srgbMatrix[0][2]*b,
		Y: srgbMatrix[1][0]*r + srgbMatrix[1][1]*g + srgbMatrix[1][2]*b,
		Z: srgbMatrix[2][0]*r + srgbMatrix[2][1]*g + srgbMatrix[2][2]*b,
	}
}

// Lab converts straight to L*a*b*.
func (c RGB) Lab() Lab {
	return c.XYZ().Lab()
}

// Lab converts to L*a*b* relative to the D65 reference white.
func (p XYZ) Lab() Lab {
	fx := labF(p.X / whiteX)
	fy := labF(p.Y / whiteY)
	fz := labF(p.Z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// DeltaE76 is the CIE76 color difference, the Euclidean distance between two
// colors in L*a*b* space. It is zero for identical colors and symmetric in
// its arguments.
func DeltaE76(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// undoes sRGB gamma companding
func linearize(u float64) float64 {
	if u <= 0.04045 {
		return u / 12.92
	}
	return math.Pow((u+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}
