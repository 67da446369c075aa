package color

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when colorspace parameters are out of range.
var ErrInvalidParams = errors.New("color: invalid colorspace parameters")

// MatrixCoefficients identifies the luma coefficients of a YUV colorspace.
type MatrixCoefficients uint8

const (
	// MatrixBT601 is ITU-R BT.601 (standard definition video).
	MatrixBT601 MatrixCoefficients = iota
	// MatrixBT709 is ITU-R BT.709 (high definition video).
	MatrixBT709
	// MatrixSMPTE240M is SMPTE 240M.
	MatrixSMPTE240M
	// MatrixBT2020NCL is ITU-R BT.2020 non-constant luminance.
	MatrixBT2020NCL
)

// String returns a string representation of the matrix coefficients.
func (m MatrixCoefficients) String() string {
	switch m {
	case MatrixBT601:
		return "BT.601"
	case MatrixBT709:
		return "BT.709"
	case MatrixSMPTE240M:
		return "SMPTE-240M"
	case MatrixBT2020NCL:
		return "BT.2020-NCL"
	default:
		return "Unknown"
	}
}

// lumaCoeffs returns the red, green and blue luma weights.
func (m MatrixCoefficients) lumaCoeffs() (lr, lg, lb float64, ok bool) {
	switch m {
	case MatrixBT601:
		return 0.299, 0.587, 0.114, true
	case MatrixBT709:
		return 0.2126, 0.7152, 0.0722, true
	case MatrixSMPTE240M:
		return 0.2122, 0.7013, 0.0865, true
	case MatrixBT2020NCL:
		return 0.2627, 0.6780, 0.0593, true
	default:
		return 0, 0, 0, false
	}
}

// Levels is the quantization range of a signal.
type Levels uint8

const (
	// LevelsTV is limited range: Y in 16..235, chroma in 16..240 (8-bit scale).
	LevelsTV Levels = iota
	// LevelsPC is full range: 0..255 (8-bit scale).
	LevelsPC
)

// String returns a string representation of the levels.
func (l Levels) String() string {
	switch l {
	case LevelsTV:
		return "TV"
	case LevelsPC:
		return "PC"
	default:
		return "Unknown"
	}
}

// Params describes how YUV samples map to RGB.
//
// The zero value is not neutral (contrast, saturation and gamma would be
// zero); start from DefaultParams.
type Params struct {
	Matrix    MatrixCoefficients
	LevelsIn  Levels // YUV side
	LevelsOut Levels // RGB side

	Brightness float64 // added to R, G and B, in [-1,1]
	Contrast   float64 // scales Y around mid-level, 1 is neutral
	Hue        float64 // rotation of the chroma vector in radians
	Saturation float64 // scales chroma, 1 is neutral

	RGamma, GGamma, BGamma float64 // per-channel gamma on the RGB side, 1 is neutral

	// InputBits is the significant bit depth of the YUV samples and
	// TextureBits the depth of the container they are normalized against.
	// Zero means 8.
	InputBits, TextureBits int
}

// DefaultParams returns BT.601 limited range video converted to full range RGB.
func DefaultParams() Params {
	return Params{
		Matrix:      MatrixBT601,
		LevelsIn:    LevelsTV,
		LevelsOut:   LevelsPC,
		Contrast:    1,
		Saturation:  1,
		RGamma:      1,
		GGamma:      1,
		BGamma:      1,
		InputBits:   8,
		TextureBits: 8,
	}
}

// Validate checks that the parameters describe a usable colorspace.
func (p Params) Validate() error {
	if _, _, _, ok := p.Matrix.lumaCoeffs(); !ok {
		return fmt.Errorf("%w: unknown matrix %d", ErrInvalidParams, p.Matrix)
	}
	if p.LevelsIn > LevelsPC || p.LevelsOut > LevelsPC {
		return fmt.Errorf("%w: unknown levels", ErrInvalidParams)
	}
	in, tex := p.bits()
	if in < 8 || tex < in || tex > 16 {
		return fmt.Errorf("%w: input bits %d, texture bits %d", ErrInvalidParams, in, tex)
	}
	if p.RGamma <= 0 || p.GGamma <= 0 || p.BGamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive", ErrInvalidParams)
	}
	return nil
}

func (p Params) bits() (in, tex int) {
	in, tex = p.InputBits, p.TextureBits
	if in == 0 {
		in = 8
	}
	if tex == 0 {
		tex = in
	}
	return in, tex
}

// Column indices of a Matrix.
const (
	colY = iota
	colU
	colV
	colC
)

// Matrix is a 3x4 affine transform. Row i computes output channel i as
// m[i][0]*a + m[i][1]*b + m[i][2]*c + m[i][3], with all values normalized
// to [0,1] of the sample range.
type Matrix [3][4]float64

// Apply transforms the triple (a, b, c).
func (m *Matrix) Apply(a, b, c float64) (x, y, z float64) {
	x = m[0][0]*a + m[0][1]*b + m[0][2]*c + m[0][3]
	y = m[1][0]*a + m[1][1]*b + m[1][2]*c + m[1][3]
	z = m[2][0]*a + m[2][1]*b + m[2][2]*c + m[2][3]
	return x, y, z
}

// Invert returns the inverse affine transform.
// The linear part of every matrix produced by YUVToRGB is non-singular.
func (m *Matrix) Invert() Matrix {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	// cofactors
	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C

	var inv Matrix
	inv[0][0] = A / det
	inv[0][1] = -(b*i - c*h) / det
	inv[0][2] = (b*f - c*e) / det
	inv[1][0] = B / det
	inv[1][1] = (a*i - c*g) / det
	inv[1][2] = -(a*f - c*d) / det
	inv[2][0] = C / det
	inv[2][1] = -(a*h - b*g) / det
	inv[2][2] = (a*e - b*d) / det

	for r := 0; r < 3; r++ {
		inv[r][colC] = -(inv[r][0]*m[0][colC] + inv[r][1]*m[1][colC] + inv[r][2]*m[2][colC])
	}
	return inv
}

// YUVToRGB derives the YUV to RGB matrix for p.
// Invalid matrix coefficients fall back to BT.601.
func (p Params) YUVToRGB() Matrix {
	lr, lg, lb, ok := p.Matrix.lumaCoeffs()
	if !ok {
		lr, lg, lb, _ = MatrixBT601.lumaCoeffs()
	}

	var m Matrix
	m[0][colY], m[1][colY], m[2][colY] = 1, 1, 1
	m[0][colU] = 0
	m[0][colV] = 2 * (1 - lr)
	m[1][colU] = -2 * (1 - lb) * lb / lg
	m[1][colV] = -2 * (1 - lr) * lr / lg
	m[2][colU] = 2 * (1 - lb)
	m[2][colV] = 0

	// Hue rotates the [U, V] vector; saturation scales it.
	huecos := p.Saturation * math.Cos(p.Hue)
	huesin := p.Saturation * math.Sin(p.Hue)
	for i := 0; i < 3; i++ {
		u := m[i][colU]
		m[i][colU] = huecos*u - huesin*m[i][colV]
		m[i][colV] = huesin*u + huecos*m[i][colV]
	}

	in, tex := p.bits()
	s := float64(int(1)<<(in-8)) / float64(int(1)<<tex-1)

	// Values below are in 8-bit scale, normalized by s.
	ymin, ymax, cmin, cmid := 16*s, 235*s, 16*s, 128*s
	if p.LevelsIn == LevelsPC {
		// 1 instead of 0 keeps chroma symmetric around 128
		ymin, ymax, cmin, cmid = 0, 255*s, 1*s, 128*s
	}
	rgbMin, rgbMax := 0.0, 1.0
	if p.LevelsOut == LevelsTV {
		rgbMin, rgbMax = 16.0/255, 235.0/255
	}

	ymul := (rgbMax - rgbMin) / (ymax - ymin)
	cmul := (rgbMax - rgbMin) / (cmid - cmin) / 2
	for i := 0; i < 3; i++ {
		m[i][colY] *= ymul
		m[i][colU] *= cmul
		m[i][colV] *= cmul
		// black in maps to black out
		m[i][colC] = rgbMin - m[i][colY]*ymin - (m[i][colU]+m[i][colV])*cmid
	}

	// Brightness offsets RGB; contrast scales Y around the middle of the range.
	for i := 0; i < 3; i++ {
		m[i][colC] += p.Brightness
		m[i][colY] *= p.Contrast
		m[i][colC] += (rgbMax - rgbMin) * (1 - p.Contrast) / 2
	}
	return m
}

// Converter converts colors between RGB and YUV for one set of Params.
// It is immutable once built and safe for concurrent use.
type Converter struct {
	params Params
	toRGB  Matrix
	toYUV  Matrix
	gamma  [3]float64
}

// NewConverter validates p and derives both conversion matrices.
func NewConverter(p Params) (*Converter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	toRGB := p.YUVToRGB()
	return &Converter{
		params: p,
		toRGB:  toRGB,
		toYUV:  toRGB.Invert(),
		gamma:  [3]float64{p.RGamma, p.GGamma, p.BGamma},
	}, nil
}

// Params returns the parameters the converter was built from.
func (c *Converter) Params() Params {
	return c.params
}

// YUVToRGB returns the YUV to RGB matrix.
func (c *Converter) YUVToRGB() Matrix {
	return c.toRGB
}

// RGBToYUV returns the RGB to YUV matrix.
func (c *Converter) RGBToYUV() Matrix {
	return c.toYUV
}

// ToRGB converts normalized YUV to normalized RGB, applying gamma.
func (c *Converter) ToRGB(y, u, v float64) (r, g, b float64) {
	r, g, b = c.toRGB.Apply(y, u, v)
	return c.encodeGamma(r, 0), c.encodeGamma(g, 1), c.encodeGamma(b, 2)
}

// ToYUV converts normalized RGB to normalized YUV, undoing gamma first.
func (c *Converter) ToYUV(r, g, b float64) (y, u, v float64) {
	return c.toYUV.Apply(c.decodeGamma(r, 0), c.decodeGamma(g, 1), c.decodeGamma(b, 2))
}

// Black returns the normalized YUV value of RGB black.
func (c *Converter) Black() [3]float64 {
	y, u, v := c.ToYUV(0, 0, 0)
	return [3]float64{y, u, v}
}

// QuantizeYUV converts an 8-bit RGB color to YUV samples of the given depth,
// rounded to nearest and clamped to [0, 2^depth-1].
func (c *Converter) QuantizeYUV(col ColorU8, depth int) [3]uint16 {
	maxVal := uint32(1)<<depth - 1
	y, u, v := c.ToYUV(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255)
	return [3]uint16{clampAndRound(y, maxVal), clampAndRound(u, maxVal), clampAndRound(v, maxVal)}
}

func (c *Converter) encodeGamma(v float64, ch int) float64 {
	if c.gamma[ch] == 1 || v <= 0 {
		return v
	}
	return math.Pow(v, 1/c.gamma[ch])
}

func (c *Converter) decodeGamma(v float64, ch int) float64 {
	if c.gamma[ch] == 1 || v <= 0 {
		return v
	}
	return math.Pow(v, c.gamma[ch])
}
