package blend

// Mode selects where the source sample of a blend comes from.
type Mode uint8

const (
	// ModeConstant blends a single color value across the plane.
	ModeConstant Mode = iota
	// ModeVarying blends a per-pixel premultiplied source plane.
	ModeVarying

	modeCount
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "Constant"
	case ModeVarying:
		return "Varying"
	default:
		return "Unknown"
	}
}

// Params describes one plane blend. All slices start at the first pixel of
// the blended rectangle; strides are in bytes. 16-bit samples are big-endian.
type Params struct {
	Dst       []byte
	DstStride int

	// Src is the premultiplied source plane, used in ModeVarying.
	Src       []byte
	SrcStride int

	// Color is the source sample, used in ModeConstant.
	Color uint16

	// Alpha is the 8-bit coverage plane.
	Alpha       []byte
	AlphaStride int

	// GlobalAlpha scales coverage for the whole element.
	GlobalAlpha uint8

	Rows, Cols int
}

// Mode returns ModeVarying when a source plane is present.
func (p *Params) Mode() Mode {
	if p.Src != nil {
		return ModeVarying
	}
	return ModeConstant
}

// Kernel blends one plane in place.
type Kernel func(p *Params)

// kernels is indexed by [depth index][mode]; depth index 0 is 8-bit, 1 is 16-bit.
var kernels = [2][modeCount]Kernel{
	{ModeConstant: blendConst8, ModeVarying: blendSrc8},
	{ModeConstant: blendConst16, ModeVarying: blendSrc16},
}

// Lookup returns the kernel for the given sample depth and mode.
// Returns nil for depths other than 8 and 16 or an unknown mode.
func Lookup(depth int, mode Mode) Kernel {
	if mode >= modeCount {
		return nil
	}
	switch depth {
	case 8:
		return kernels[0][mode]
	case 16:
		return kernels[1][mode]
	default:
		return nil
	}
}

// Plane blends p into its destination using the kernel selected by depth
// and p.Mode(). It is a no-op for unsupported depths or empty rectangles.
func Plane(p *Params, depth int) {
	if p.Rows <= 0 || p.Cols <= 0 {
		return
	}
	if k := Lookup(depth, p.Mode()); k != nil {
		k(p)
	}
}

// blendConst8: out = (color*a + dst*(65025-a) + 32512) / 65025
func blendConst8(p *Params) {
	color := uint32(p.Color)
	for i := 0; i < p.Rows; i++ {
		dst := p.Dst[i*p.DstStride:]
		alpha := p.Alpha[i*p.AlphaStride:]
		for j := 0; j < p.Cols; j++ {
			a := mulAlpha(alpha[j], p.GlobalAlpha)
			d := uint32(dst[j])
			dst[j] = uint8(clampMax(divRound65025(color*a+d*(alphaOne-a)), 0xFF))
		}
	}
}

// blendSrc8: out = (src*g + 127)/255 + (dst*(65025-a) + 32512)/65025
func blendSrc8(p *Params) {
	g := uint32(p.GlobalAlpha)
	for i := 0; i < p.Rows; i++ {
		dst := p.Dst[i*p.DstStride:]
		src := p.Src[i*p.SrcStride:]
		alpha := p.Alpha[i*p.AlphaStride:]
		for j := 0; j < p.Cols; j++ {
			a := mulAlpha(alpha[j], p.GlobalAlpha)
			s := uint32(src[j])
			d := uint32(dst[j])
			dst[j] = uint8(clampMax(divRound255(s*g)+divRound65025(d*(alphaOne-a)), 0xFF))
		}
	}
}

// blendConst16 uses the same structure as blendConst8. The weights sum to
// 65025, so color*a + dst*(65025-a) <= 65535*65025 fits in uint32.
func blendConst16(p *Params) {
	color := uint32(p.Color)
	for i := 0; i < p.Rows; i++ {
		dst := p.Dst[i*p.DstStride:]
		alpha := p.Alpha[i*p.AlphaStride:]
		for j := 0; j < p.Cols; j++ {
			a := mulAlpha(alpha[j], p.GlobalAlpha)
			d := uint32(dst[2*j])<<8 | uint32(dst[2*j+1])
			out := clampMax(divRound65025(color*a+d*(alphaOne-a)), 0xFFFF)
			dst[2*j] = uint8(out >> 8)
			dst[2*j+1] = uint8(out)
		}
	}
}

func blendSrc16(p *Params) {
	g := uint32(p.GlobalAlpha)
	for i := 0; i < p.Rows; i++ {
		dst := p.Dst[i*p.DstStride:]
		src := p.Src[i*p.SrcStride:]
		alpha := p.Alpha[i*p.AlphaStride:]
		for j := 0; j < p.Cols; j++ {
			a := mulAlpha(alpha[j], p.GlobalAlpha)
			s := uint32(src[2*j])<<8 | uint32(src[2*j+1])
			d := uint32(dst[2*j])<<8 | uint32(dst[2*j+1])
			out := clampMax(divRound255(s*g)+divRound65025(d*(alphaOne-a)), 0xFFFF)
			dst[2*j] = uint8(out >> 8)
			dst[2*j+1] = uint8(out)
		}
	}
}
