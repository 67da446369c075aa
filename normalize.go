package osd

import (
	"fmt"

	"github.com/gogpu/osd/internal/color"
	"github.com/gogpu/osd/internal/scale"
)

// normalized is an overlay element ready for blending at display size.
type normalized struct {
	// color holds the premultiplied element in the working format.
	// It is nil for coverage elements, which use value instead.
	color *Image
	value [3]uint16

	alpha       []byte
	alphaStride int
	globalAlpha uint8

	// release returns temporaries to the pool. It is never nil.
	release func()
}

func noRelease() {}

// normalize converts el into the working representation in format wf.
// Failures wrap ErrUnsupportedElement and leave nothing to release.
func (c *Compositor) normalize(el *Element, batch *Batch, conv *Converter, wf Format) (*normalized, error) {
	payload := el.Payload
	switch p := payload.(type) {
	case *Coverage:
		if p == nil {
			return nil, fmt.Errorf("%w: no payload", ErrUnsupportedElement)
		}
		payload = *p
	case *DirectColor:
		if p == nil {
			return nil, fmt.Errorf("%w: no payload", ErrUnsupportedElement)
		}
		payload = *p
	case nil:
		return nil, fmt.Errorf("%w: no payload", ErrUnsupportedElement)
	}

	if k := payload.Kind(); k != batch.Kind {
		return nil, fmt.Errorf("%w: %v payload in %v batch", ErrUnsupportedElement, k, batch.Kind)
	}

	switch p := payload.(type) {
	case Coverage:
		return c.normalizeCoverage(el, &p, batch.Prescaled, conv, wf)
	case DirectColor:
		return c.normalizeDirect(el, &p, batch.Prescaled, conv, wf)
	default:
		return nil, fmt.Errorf("%w: payload %T", ErrUnsupportedElement, p)
	}
}

// normalizeCoverage accepts only masks already at display size. A coverage
// batch marked prescaled is malformed: there is nothing to scale.
func (c *Compositor) normalizeCoverage(el *Element, p *Coverage, prescaled bool, conv *Converter, wf Format) (*normalized, error) {
	if prescaled {
		return nil, fmt.Errorf("%w: prescaled coverage batch", ErrUnsupportedElement)
	}
	if el.W <= 0 || el.H <= 0 {
		return nil, fmt.Errorf("%w: coverage size %dx%d", ErrUnsupportedElement, el.W, el.H)
	}
	if el.W != el.DW || el.H != el.DH {
		return nil, fmt.Errorf("%w: coverage %dx%d not at display size %dx%d",
			ErrUnsupportedElement, el.W, el.H, el.DW, el.DH)
	}
	if p.Stride < el.W || len(p.Mask) < p.Stride*(el.H-1)+el.W {
		return nil, fmt.Errorf("%w: coverage mask too small for %dx%d stride %d",
			ErrUnsupportedElement, el.W, el.H, p.Stride)
	}

	col := color.UnpackRGBA(p.Color)
	return &normalized{
		value:       conv.QuantizeYUV(col, wf.Depth()),
		alpha:       p.Mask,
		alphaStride: p.Stride,
		globalAlpha: 255 - col.A,
		release:     noRelease,
	}, nil
}

func (c *Compositor) normalizeDirect(el *Element, p *DirectColor, prescaled bool, conv *Converter, wf Format) (*normalized, error) {
	if el.W < scale.MinWidth {
		return nil, fmt.Errorf("%w: bitmap width %d below %d", ErrUnsupportedElement, el.W, scale.MinWidth)
	}
	if el.H <= 0 || el.DW <= 0 || el.DH <= 0 {
		return nil, fmt.Errorf("%w: bitmap %dx%d displayed at %dx%d",
			ErrUnsupportedElement, el.W, el.H, el.DW, el.DH)
	}
	if prescaled && (el.W != el.DW || el.H != el.DH) {
		return nil, fmt.Errorf("%w: prescaled bitmap %dx%d displayed at %dx%d",
			ErrUnsupportedElement, el.W, el.H, el.DW, el.DH)
	}
	src, err := ImageFromPlanes([][]byte{p.Pixels}, []int{p.Stride}, el.W, el.H, FormatBGRA8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedElement, err)
	}

	colorImg := c.pool.Get(el.DW, el.DH, wf)
	alphaSrc := c.pool.Get(el.W, el.H, FormatGray8)
	alpha := c.pool.Get(el.DW, el.DH, FormatGray8)
	release := func() {
		c.pool.Put(colorImg)
		c.pool.Put(alphaSrc)
		c.pool.Put(alpha)
	}

	if err := c.scaler.ResizeConvert(colorImg, colorImg.Bounds(), src, src.Bounds(), conv); err != nil {
		release()
		return nil, fmt.Errorf("%w: color: %w", ErrUnsupportedElement, err)
	}

	extractAlpha(alphaSrc, src)
	if err := c.scaler.ResizeConvert(alpha, alpha.Bounds(), alphaSrc, alphaSrc.Bounds(), nil); err != nil {
		release()
		return nil, fmt.Errorf("%w: alpha: %w", ErrUnsupportedElement, err)
	}

	removeBlackOffset(colorImg, alpha, conv)

	return &normalized{
		color:       colorImg,
		alpha:       alpha.Plane(0),
		alphaStride: alpha.Stride(0),
		globalAlpha: 255,
		release:     release,
	}, nil
}

// extractAlpha copies the alpha bytes of a BGRA image into a Gray8 plane.
func extractAlpha(dst, bgra *Image) {
	w, h := bgra.Width(), bgra.Height()
	src, ss := bgra.Plane(0), bgra.Stride(0)
	out, ds := dst.Plane(0), dst.Stride(0)
	for y := 0; y < h; y++ {
		row := src[y*ss:]
		orow := out[y*ds : y*ds+w]
		for x := range orow {
			orow[x] = row[4*x+3]
		}
	}
}

// removeBlackOffset fixes premultiplied pixels after an affine RGB to YUV
// conversion: the matrix adds the full black level regardless of alpha,
// so black*(255-a)/255 is taken back out.
func removeBlackOffset(img, alpha *Image, conv *Converter) {
	black := conv.Black()
	maxVal := float64(img.Format().MaxSample())
	w, h := img.Width(), img.Height()

	for p := 0; p < 3; p++ {
		b := uint32(min(max(black[p], 0), 1)*maxVal + 0.5)
		if b == 0 {
			continue
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := uint32(alpha.Sample(0, x, y))
				if a == 255 {
					continue
				}
				off := (b*(255-a) + 127) / 255
				v := uint32(img.Sample(p, x, y))
				if v > off {
					v -= off
				} else {
					v = 0
				}
				img.SetSample(p, x, y, uint16(v))
			}
		}
	}
}
