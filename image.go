package osd

import (
	intImage "github.com/gogpu/osd/internal/image"
)

// Image is a planar image with per-plane strides.
// 16-bit samples are stored big-endian.
type Image = intImage.Planar

// Format is a pixel storage format.
type Format = intImage.Format

// Pool recycles working images and per-element temporaries between passes.
type Pool = intImage.Pool

// Pixel formats.
const (
	FormatGray8     = intImage.FormatGray8
	FormatGray16    = intImage.FormatGray16
	FormatBGRA8     = intImage.FormatBGRA8
	FormatYUV410P   = intImage.FormatYUV410P
	FormatYUV411P   = intImage.FormatYUV411P
	FormatYUV420P   = intImage.FormatYUV420P
	FormatYUV422P   = intImage.FormatYUV422P
	FormatYUV440P   = intImage.FormatYUV440P
	FormatYUV444P   = intImage.FormatYUV444P
	FormatYUVA420P  = intImage.FormatYUVA420P
	FormatYUV420P16 = intImage.FormatYUV420P16
	FormatYUV422P16 = intImage.FormatYUV422P16
	FormatYUV444P16 = intImage.FormatYUV444P16
)

// NewImage allocates a zeroed image with tightly packed rows.
func NewImage(width, height int, format Format) (*Image, error) {
	return intImage.NewPlanar(width, height, format)
}

// ImageFromPlanes wraps caller-owned plane buffers without copying.
// There must be exactly one buffer and one stride per plane of format.
func ImageFromPlanes(planes [][]byte, strides []int, width, height int, format Format) (*Image, error) {
	return intImage.FromPlanes(planes, strides, width, height, format)
}

// NewPool creates a buffer pool keeping at most maxPerBucket images of
// each size and format.
func NewPool(maxPerBucket int) *Pool {
	return intImage.NewPool(maxPerBucket)
}
