// Package image provides planar image buffers for the OSD compositor.
//
// Images are stored as up to four planes, each with its own byte stride.
// Chroma planes (1 and 2) may be subsampled relative to plane 0; the
// subsampling factors come from the pixel format table.
package image

// NoSubsampling is the chroma shift sentinel for formats whose planes are
// not subsampled or have no chroma planes at all.
const NoSubsampling = 31

// RowAlignBits is the row alignment, in bits, that region copies must
// respect on every plane.
const RowAlignBits = 128

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is a single 8-bit plane (coverage and alpha masks).
	FormatGray8 Format = iota

	// FormatGray16 is a single 16-bit plane.
	FormatGray16

	// FormatBGRA8 is packed 32-bit BGRA with premultiplied alpha.
	// It is the source format of direct-color overlay bitmaps.
	FormatBGRA8

	// FormatYUV410P is 8-bit YUV with chroma subsampled 4x horizontally and vertically.
	FormatYUV410P

	// FormatYUV411P is 8-bit YUV with chroma subsampled 4x horizontally.
	FormatYUV411P

	// FormatYUV420P is 8-bit YUV with chroma subsampled 2x in both directions.
	FormatYUV420P

	// FormatYUV422P is 8-bit YUV with chroma subsampled 2x horizontally.
	FormatYUV422P

	// FormatYUV440P is 8-bit YUV with chroma subsampled 2x vertically.
	FormatYUV440P

	// FormatYUV444P is 8-bit YUV without chroma subsampling.
	FormatYUV444P

	// FormatYUVA420P is FormatYUV420P with a full resolution alpha plane.
	FormatYUVA420P

	// FormatYUV420P16 is 16-bit YUV with chroma subsampled 2x in both directions.
	FormatYUV420P16

	// FormatYUV422P16 is 16-bit YUV with chroma subsampled 2x horizontally.
	FormatYUV422P16

	// FormatYUV444P16 is 16-bit YUV without chroma subsampling.
	// This is the default working format of the compositor.
	FormatYUV444P16

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Family identifies how the color channels of a format are interpreted.
type Family uint8

const (
	// FamilyGray is a single luminance or coverage channel.
	FamilyGray Family = iota
	// FamilyRGB has red, green and blue channels.
	FamilyRGB
	// FamilyYUV has a luma channel and two color difference channels.
	FamilyYUV
)

// String returns a string representation of the family.
func (f Family) String() string {
	switch f {
	case FamilyGray:
		return "Gray"
	case FamilyRGB:
		return "RGB"
	case FamilyYUV:
		return "YUV"
	default:
		return "Unknown"
	}
}

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Planes is the number of planes.
	Planes int

	// PlaneBits is the number of bits per pixel on each plane.
	PlaneBits [4]int

	// Depth is the number of bits per sample (8 or 16).
	Depth int

	// ChromaShiftX and ChromaShiftY are the log2 subsampling factors of
	// planes 1 and 2, or NoSubsampling.
	ChromaShiftX, ChromaShiftY uint

	// Family is the color family.
	Family Family

	// HasAlpha indicates if the format carries an alpha channel.
	HasAlpha bool

	// Packed indicates that all channels are interleaved in plane 0.
	Packed bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {
		Planes:       1,
		PlaneBits:    [4]int{8},
		Depth:        8,
		ChromaShiftX: NoSubsampling,
		ChromaShiftY: NoSubsampling,
		Family:       FamilyGray,
	},
	FormatGray16: {
		Planes:       1,
		PlaneBits:    [4]int{16},
		Depth:        16,
		ChromaShiftX: NoSubsampling,
		ChromaShiftY: NoSubsampling,
		Family:       FamilyGray,
	},
	FormatBGRA8: {
		Planes:       1,
		PlaneBits:    [4]int{32},
		Depth:        8,
		ChromaShiftX: NoSubsampling,
		ChromaShiftY: NoSubsampling,
		Family:       FamilyRGB,
		HasAlpha:     true,
		Packed:       true,
	},
	FormatYUV410P:   yuvInfo(8, 2, 2, false),
	FormatYUV411P:   yuvInfo(8, 2, 0, false),
	FormatYUV420P:   yuvInfo(8, 1, 1, false),
	FormatYUV422P:   yuvInfo(8, 1, 0, false),
	FormatYUV440P:   yuvInfo(8, 0, 1, false),
	FormatYUV444P:   yuvInfo(8, 0, 0, false),
	FormatYUVA420P:  yuvInfo(8, 1, 1, true),
	FormatYUV420P16: yuvInfo(16, 1, 1, false),
	FormatYUV422P16: yuvInfo(16, 1, 0, false),
	FormatYUV444P16: yuvInfo(16, 0, 0, false),
}

func yuvInfo(depth int, sx, sy uint, alpha bool) FormatInfo {
	fi := FormatInfo{
		Planes:       3,
		PlaneBits:    [4]int{depth, depth, depth},
		Depth:        depth,
		ChromaShiftX: sx,
		ChromaShiftY: sy,
		Family:       FamilyYUV,
		HasAlpha:     alpha,
	}
	if alpha {
		fi.Planes = 4
		fi.PlaneBits[3] = depth
	}
	return fi
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Planes returns the number of planes.
func (f Format) Planes() int {
	return f.Info().Planes
}

// Depth returns the number of bits per sample.
func (f Format) Depth() int {
	return f.Info().Depth
}

// Family returns the color family of the format.
func (f Format) Family() Family {
	return f.Info().Family
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// MaxSample returns the largest sample value representable at the format depth.
func (f Format) MaxSample() uint32 {
	return 1<<f.Depth() - 1
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGray16:
		return "Gray16"
	case FormatBGRA8:
		return "BGRA8"
	case FormatYUV410P:
		return "YUV410P"
	case FormatYUV411P:
		return "YUV411P"
	case FormatYUV420P:
		return "YUV420P"
	case FormatYUV422P:
		return "YUV422P"
	case FormatYUV440P:
		return "YUV440P"
	case FormatYUV444P:
		return "YUV444P"
	case FormatYUVA420P:
		return "YUVA420P"
	case FormatYUV420P16:
		return "YUV420P16"
	case FormatYUV422P16:
		return "YUV422P16"
	case FormatYUV444P16:
		return "YUV444P16"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// IsChromaPlane reports whether plane p is subsampled by the chroma shifts.
func (f Format) IsChromaPlane(p int) bool {
	return (p == 1 || p == 2) && f.Info().Family == FamilyYUV
}

// PlaneShift returns the log2 subsampling factors of plane p relative to plane 0.
func (f Format) PlaneShift(p int) (sx, sy uint) {
	if !f.IsChromaPlane(p) {
		return 0, 0
	}
	info := f.Info()
	return effectiveShift(info.ChromaShiftX), effectiveShift(info.ChromaShiftY)
}

func effectiveShift(s uint) uint {
	if s == NoSubsampling {
		return 0
	}
	return s
}

// PlaneSize returns the dimensions of plane p for an image of the given size.
// Subsampled dimensions round up so odd-sized images keep their last column.
func (f Format) PlaneSize(p, width, height int) (int, int) {
	sx, sy := f.PlaneShift(p)
	return ceilShift(width, sx), ceilShift(height, sy)
}

// RowBytes calculates the number of bytes needed for a row of plane p.
func (f Format) RowBytes(p, width int) int {
	w, _ := f.PlaneSize(p, width, 1)
	return (w*f.Info().PlaneBits[p] + 7) / 8
}

// RegionStep returns the horizontal and vertical granularity at which a
// region of an image in this format can be addressed.
//
// The vertical step is the chroma block height. The horizontal step starts
// at the chroma block width and doubles until every plane's row segment is
// a multiple of RowAlignBits.
func (f Format) RegionStep() (sx, sy int) {
	info := f.Info()

	sx = 1 << effectiveShift(info.ChromaShiftX)
	sy = 1 << effectiveShift(info.ChromaShiftY)

	for p := 0; p < info.Planes; p++ {
		bits := info.PlaneBits[p]
		if f.IsChromaPlane(p) {
			// a chroma plane spans sx>>shift samples per sx luma columns
			bits >>= effectiveShift(info.ChromaShiftX)
		}
		if bits == 0 {
			continue
		}
		for sx*bits%RowAlignBits != 0 {
			sx *= 2
		}
	}
	return sx, sy
}

func ceilShift(v int, s uint) int {
	return (v + (1 << s) - 1) >> s
}
