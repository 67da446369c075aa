package image

import (
	"errors"
	stdimage "image"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrPlaneCount is returned when the number of planes does not match the format.
	ErrPlaneCount = errors.New("image: plane count does not match format")
)

// Planar is an image stored as separate planes with independent strides.
//
// 16-bit samples are stored big-endian, the same layout as image.Gray16,
// so a single plane can be exposed to the standard image interfaces
// without copying.
//
// Thread safety: Planar has no internal synchronization. Concurrent reads
// are safe; writes require external synchronization.
type Planar struct {
	planes  [4][]byte
	strides [4]int
	width   int
	height  int
	format  Format

	// owned is set when the planes were allocated here and may be recycled.
	owned bool
}

// NewPlanar allocates a zeroed planar image with tightly packed rows.
func NewPlanar(width, height int, format Format) (*Planar, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	img := &Planar{width: width, height: height, format: format, owned: true}
	for p := 0; p < format.Planes(); p++ {
		_, h := format.PlaneSize(p, width, height)
		stride := format.RowBytes(p, width)
		img.planes[p] = make([]byte, stride*h)
		img.strides[p] = stride
	}
	return img, nil
}

// FromPlanes wraps existing plane buffers without copying.
// The caller must keep the buffers valid for the lifetime of the image.
func FromPlanes(planes [][]byte, strides []int, width, height int, format Format) (*Planar, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	n := format.Planes()
	if len(planes) != n || len(strides) != n {
		return nil, ErrPlaneCount
	}

	img := &Planar{width: width, height: height, format: format}
	for p := 0; p < n; p++ {
		_, h := format.PlaneSize(p, width, height)
		rowBytes := format.RowBytes(p, width)
		if strides[p] < rowBytes {
			return nil, ErrInvalidStride
		}
		if len(planes[p]) < strides[p]*(h-1)+rowBytes {
			return nil, ErrDataTooSmall
		}
		img.planes[p] = planes[p]
		img.strides[p] = strides[p]
	}
	return img, nil
}

// Width returns the image width in pixels.
func (b *Planar) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Planar) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *Planar) Format() Format {
	return b.format
}

// Bounds returns the image rectangle, anchored at the origin.
func (b *Planar) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, b.width, b.height)
}

// NumPlanes returns the number of planes.
func (b *Planar) NumPlanes() int {
	return b.format.Planes()
}

// Plane returns the raw bytes of plane p.
func (b *Planar) Plane(p int) []byte {
	return b.planes[p]
}

// Stride returns the number of bytes per row of plane p.
func (b *Planar) Stride(p int) int {
	return b.strides[p]
}

// PlaneSize returns the dimensions of plane p.
func (b *Planar) PlaneSize(p int) (int, int) {
	return b.format.PlaneSize(p, b.width, b.height)
}

// Sample returns the sample at plane coordinates (x, y) of plane p.
// Packed formats are addressed per byte.
func (b *Planar) Sample(p, x, y int) uint16 {
	row := b.planes[p][y*b.strides[p]:]
	if b.format.Depth() == 16 {
		return uint16(row[2*x])<<8 | uint16(row[2*x+1])
	}
	return uint16(row[x])
}

// SetSample stores v at plane coordinates (x, y) of plane p.
func (b *Planar) SetSample(p, x, y int, v uint16) {
	row := b.planes[p][y*b.strides[p]:]
	if b.format.Depth() == 16 {
		row[2*x] = byte(v >> 8)
		row[2*x+1] = byte(v)
		return
	}
	row[x] = byte(v)
}

// FillPlane sets every sample of plane p to v.
func (b *Planar) FillPlane(p int, v uint16) {
	w, h := b.PlaneSize(p)
	for y := range h {
		for x := range w {
			b.SetSample(p, x, y, v)
		}
	}
}

// Clear sets all samples to zero.
func (b *Planar) Clear() {
	for p := 0; p < b.NumPlanes(); p++ {
		clear(b.planes[p])
	}
}

// Clone creates a deep copy with tightly packed rows.
func (b *Planar) Clone() *Planar {
	c := &Planar{width: b.width, height: b.height, format: b.format, owned: true}
	for p := 0; p < b.NumPlanes(); p++ {
		_, h := b.PlaneSize(p)
		rowBytes := b.format.RowBytes(p, b.width)
		c.planes[p] = make([]byte, rowBytes*h)
		c.strides[p] = rowBytes
		for y := range h {
			copy(c.planes[p][y*rowBytes:(y+1)*rowBytes], b.planes[p][y*b.strides[p]:])
		}
	}
	return c
}

// Equal reports whether both images have the same format, size and samples.
// Row padding is ignored.
func (b *Planar) Equal(o *Planar) bool {
	if b.format != o.format || b.width != o.width || b.height != o.height {
		return false
	}
	for p := 0; p < b.NumPlanes(); p++ {
		_, h := b.PlaneSize(p)
		rowBytes := b.format.RowBytes(p, b.width)
		for y := range h {
			r1 := b.planes[p][y*b.strides[p] : y*b.strides[p]+rowBytes]
			r2 := o.planes[p][y*o.strides[p] : y*o.strides[p]+rowBytes]
			if string(r1) != string(r2) {
				return false
			}
		}
	}
	return true
}

// Gray returns plane p of an 8-bit image as an image.Gray sharing memory.
// Returns nil for 16-bit or packed formats.
func (b *Planar) Gray(p int) *stdimage.Gray {
	if b.format.Depth() != 8 || b.format.Info().Packed {
		return nil
	}
	w, h := b.PlaneSize(p)
	return &stdimage.Gray{Pix: b.planes[p], Stride: b.strides[p], Rect: stdimage.Rect(0, 0, w, h)}
}

// Gray16 returns plane p of a 16-bit image as an image.Gray16 sharing memory.
// Returns nil for 8-bit formats.
func (b *Planar) Gray16(p int) *stdimage.Gray16 {
	if b.format.Depth() != 16 {
		return nil
	}
	w, h := b.PlaneSize(p)
	return &stdimage.Gray16{Pix: b.planes[p], Stride: b.strides[p], Rect: stdimage.Rect(0, 0, w, h)}
}
