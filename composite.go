package osd

import (
	"fmt"
	"image"

	"github.com/gogpu/osd/internal/blend"
	"github.com/gogpu/osd/internal/cache"
	intImage "github.com/gogpu/osd/internal/image"
)

// Compositor blends overlay batches into video frames.
//
// A Compositor holds its configuration, a scaler, a buffer pool and the
// converters derived for the colorspaces it has seen.
// It is safe for concurrent use on different destination images.
type Compositor struct {
	scaler     Scaler
	pool       *Pool
	workFormat Format
	converters *cache.Cache[ColorspaceParams, *Converter]
}

// converterCacheSize bounds the number of colorspaces a Compositor remembers.
const converterCacheSize = 16

// New creates a Compositor with the given options.
func New(opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scaler == nil {
		o.scaler = NewScaler(o.scalerConfig)
	}
	if o.pool == nil {
		o.pool = NewPool(4)
	}

	workFormat := FormatYUV444P16
	if o.workingDepth == 8 {
		workFormat = FormatYUV444P
	}

	return &Compositor{
		scaler:     o.scaler,
		pool:       o.pool,
		workFormat: workFormat,
		converters: cache.New[ColorspaceParams, *Converter](converterCacheSize),
	}
}

// converter returns the cached Converter for csp, deriving it on first use.
// Invalid parameters are never cached.
func (c *Compositor) converter(csp ColorspaceParams) (*Converter, error) {
	return c.converters.GetOrCreate(csp, func() (*Converter, error) {
		return NewConverter(csp)
	})
}

// WorkingFormat returns the format of the intermediate image elements are
// blended into. A pass on a destination deeper than this format works at
// the destination depth instead.
func (c *Compositor) WorkingFormat() Format {
	return c.workFormat
}

// workingFormatFor returns the working format for a pass on dst.
// It never has fewer bits than dst, so the extract and write-back round
// trip stays lossless.
func (c *Compositor) workingFormatFor(dst *Image) Format {
	if dst.Format().Depth() > c.workFormat.Depth() {
		return FormatYUV444P16
	}
	return c.workFormat
}

// Report summarizes one compositing pass.
type Report struct {
	// Region is the aligned destination region that was rewritten.
	// It is empty when the pass was a no-op.
	Region image.Rectangle

	// Blended counts elements painted into the frame.
	Blended int

	// Skipped counts elements left out, either because they fell outside
	// the frame or because they could not be normalized.
	Skipped int
}

// Composite blends batch into dst using the given colorspace.
//
// A nil or empty batch, or one whose elements all lie outside the frame,
// leaves dst untouched and returns an empty Report. Elements that cannot
// be normalized are skipped; an error is only returned when the
// destination or colorspace is unusable or the scaler fails on the
// frame region.
func (c *Compositor) Composite(dst *Image, batch *Batch, csp ColorspaceParams) (Report, error) {
	if dst == nil {
		return Report{}, ErrNilImage
	}
	if dst.Format().Family() != intImage.FamilyYUV {
		return Report{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, dst.Format())
	}
	conv, err := c.converter(csp)
	if err != nil {
		return Report{}, fmt.Errorf("osd: colorspace: %w", err)
	}
	if batch == nil {
		return Report{}, nil
	}

	region, ok := planRegion(batch, dst)
	if !ok {
		return Report{}, nil
	}

	workFormat := c.workingFormatFor(dst)
	log := Logger()
	log.Debug("osd: compositing",
		"region", region,
		"kind", batch.Kind,
		"elements", len(batch.Elements),
		"working", workFormat)

	work := c.pool.Get(region.Dx(), region.Dy(), workFormat)
	defer c.pool.Put(work)

	report := Report{Region: region}
	if err := c.scaler.ResizeConvert(work, work.Bounds(), dst, region, nil); err != nil {
		return report, fmt.Errorf("osd: extract region: %w", err)
	}

	for i := range batch.Elements {
		el := &batch.Elements[i]
		clip := el.Rect().Intersect(region)
		if clip.Empty() {
			log.Debug("osd: element outside frame", "index", i, "rect", el.Rect())
			report.Skipped++
			continue
		}
		if err := c.compositeElement(work, region, clip, el, batch, conv); err != nil {
			log.Warn("osd: skipping overlay element", "index", i, "error", err)
			report.Skipped++
			continue
		}
		report.Blended++
	}

	if err := c.scaler.ResizeConvert(dst, region, work, work.Bounds(), nil); err != nil {
		return report, fmt.Errorf("osd: write back region: %w", err)
	}
	return report, nil
}

// compositeElement normalizes el and blends the part of it inside clip
// into the three color planes of work, which covers region of the frame.
func (c *Compositor) compositeElement(work *Image, region, clip image.Rectangle, el *Element, batch *Batch, conv *Converter) error {
	n, err := c.normalize(el, batch, conv, work.Format())
	if err != nil {
		return err
	}
	defer n.release()

	depth := work.Format().Depth()
	bps := depth / 8
	src := clip.Min.Sub(el.Rect().Min)
	dst := clip.Min.Sub(region.Min)

	for p := 0; p < 3; p++ {
		ds := work.Stride(p)
		bp := &blend.Params{
			Dst:         work.Plane(p)[dst.Y*ds+dst.X*bps:],
			DstStride:   ds,
			Alpha:       n.alpha[src.Y*n.alphaStride+src.X:],
			AlphaStride: n.alphaStride,
			GlobalAlpha: n.globalAlpha,
			Rows:        clip.Dy(),
			Cols:        clip.Dx(),
		}
		if n.color != nil {
			ss := n.color.Stride(p)
			bp.Src = n.color.Plane(p)[src.Y*ss+src.X*bps:]
			bp.SrcStride = ss
		} else {
			bp.Color = n.value[p]
		}
		blend.Plane(bp, depth)
	}
	return nil
}

// Composite blends batch into dst with a one-shot Compositor.
// See Compositor.Composite.
func Composite(dst *Image, batch *Batch, csp ColorspaceParams, opts ...Option) (Report, error) {
	return New(opts...).Composite(dst, batch, csp)
}
