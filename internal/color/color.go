// Package color derives the YUV/RGB conversion matrices used by the
// compositor and converts individual overlay colors between them.
package color

// ColorU8 represents a color with uint8 components in [0,255].
// A is opacity; overlay colors carrying transparency convert with 255-A.
type ColorU8 struct {
	R, G, B, A uint8
}

// UnpackRGBA splits a color packed as 0xRRGGBBAA, most significant byte first.
func UnpackRGBA(c uint32) ColorU8 {
	return ColorU8{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// Pack returns the color packed as 0xRRGGBBAA.
func (c ColorU8) Pack() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// clampAndRound clamps v to [0,1] and scales it to [0,maxVal] with rounding.
func clampAndRound(v float64, maxVal uint32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return uint16(maxVal)
	}
	return uint16(v*float64(maxVal) + 0.5)
}
