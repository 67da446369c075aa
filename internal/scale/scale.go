package scale

import (
	"errors"
	"fmt"
	stdimage "image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/osd/internal/color"
	"github.com/gogpu/osd/internal/filter"
	"github.com/gogpu/osd/internal/image"
)

// MinWidth is the narrowest packed RGB region the scaler accepts.
const MinWidth = 8

var (
	// ErrRegion is returned for empty, out of bounds or misaligned regions.
	ErrRegion = errors.New("scale: invalid region")

	// ErrTooNarrow is returned when a packed RGB source is narrower than MinWidth.
	ErrTooNarrow = errors.New("scale: source too narrow")

	// ErrConversion is returned when no conversion exists between two formats.
	ErrConversion = errors.New("scale: unsupported conversion")
)

// Scaler resizes and converts image regions.
// It holds no per-call state and is safe for concurrent use.
type Scaler struct {
	cfg    Config
	interp xdraw.Interpolator

	// luma runs on plane 0 and on every plane of non-YUV output,
	// chroma on the color difference planes of YUV output.
	luma, chroma filter.Stage
}

// New creates a scaler with the given configuration.
// Filter kernels are derived here once and shared by every call.
func New(cfg Config) *Scaler {
	return &Scaler{
		cfg:    cfg,
		interp: cfg.Filter.interpolator(),
		luma:   filter.NewStage(cfg.LumaBlur, cfg.LumaSharpen),
		chroma: filter.NewStage(cfg.ChromaBlur, cfg.ChromaSharpen),
	}
}

// Config returns the scaler configuration.
func (s *Scaler) Config() Config {
	return s.cfg
}

// channels holds the full resolution planes of one region in plane order
// (R, G, B for packed RGB). Index 3 is alpha and is nil when the source
// has none.
type channels [4]*filter.Plane

// ResizeConvert reads region sr of src, resizes it to the size of dr,
// converts it to the color family of dst and writes it into region dr.
//
// conv is required when the color families of src and dst differ.
// The alpha plane of dst is only written when src carries alpha.
func (s *Scaler) ResizeConvert(dst *image.Planar, dr stdimage.Rectangle, src *image.Planar, sr stdimage.Rectangle, conv *color.Converter) error {
	if err := checkRegion(src, sr); err != nil {
		return fmt.Errorf("source %v: %w", src.Format(), err)
	}
	if err := checkRegion(dst, dr); err != nil {
		return fmt.Errorf("destination %v: %w", dst.Format(), err)
	}
	if src.Format().Info().Packed && sr.Dx() < MinWidth {
		return fmt.Errorf("%w: %d < %d", ErrTooNarrow, sr.Dx(), MinWidth)
	}

	sf, df := src.Format().Family(), dst.Format().Family()
	if !convertible(sf, df, conv) {
		return fmt.Errorf("%w: %v to %v", ErrConversion, src.Format(), dst.Format())
	}

	ch := unpack(src, sr)
	if sr.Size() != dr.Size() {
		for i, p := range ch {
			if p != nil {
				ch[i] = s.resize(p, dr.Dx(), dr.Dy())
			}
		}
	}
	convertFamily(&ch, sf, df, conv)
	s.applyFilters(&ch, df)
	pack(dst, dr, &ch)
	return nil
}

func checkRegion(img *image.Planar, r stdimage.Rectangle) error {
	if r.Empty() || !r.In(img.Bounds()) {
		return fmt.Errorf("%w: %v outside %v", ErrRegion, r, img.Bounds())
	}
	sx, sy := img.Format().RegionStep()
	if r.Min.X%sx != 0 || r.Min.Y%sy != 0 ||
		(r.Max.X%sx != 0 && r.Max.X != img.Width()) ||
		(r.Max.Y%sy != 0 && r.Max.Y != img.Height()) {
		return fmt.Errorf("%w: %v not aligned to %dx%d", ErrRegion, r, sx, sy)
	}
	return nil
}

func convertible(sf, df image.Family, conv *color.Converter) bool {
	switch {
	case sf == df:
		return true
	case sf == image.FamilyGray || df == image.FamilyGray:
		return false
	default:
		return conv != nil
	}
}

// unpack reads region r of img into normalized full resolution planes.
func unpack(img *image.Planar, r stdimage.Rectangle) channels {
	var ch channels
	f := img.Format()
	info := f.Info()
	w, h := r.Dx(), r.Dy()
	norm := 1 / float32(f.MaxSample())

	if info.Packed {
		// BGRA: byte order B, G, R, A; planes are R, G, B, A.
		for i := range ch {
			ch[i] = filter.NewPlane(w, h)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sx := 4 * (r.Min.X + x)
				sy := r.Min.Y + y
				ch[2].Set(x, y, float32(img.Sample(0, sx, sy))*norm)
				ch[1].Set(x, y, float32(img.Sample(0, sx+1, sy))*norm)
				ch[0].Set(x, y, float32(img.Sample(0, sx+2, sy))*norm)
				ch[3].Set(x, y, float32(img.Sample(0, sx+3, sy))*norm)
			}
		}
		return ch
	}

	for p := 0; p < info.Planes; p++ {
		hx, hy := f.PlaneShift(p)
		plane := filter.NewPlane(w, h)
		for y := 0; y < h; y++ {
			py := (r.Min.Y + y) >> hy
			for x := 0; x < w; x++ {
				plane.Set(x, y, float32(img.Sample(p, (r.Min.X+x)>>hx, py))*norm)
			}
		}
		ch[p] = plane
	}
	return ch
}

// pack writes the planes into region r of img.
// Subsampled planes take the mean of the samples each one covers.
func pack(img *image.Planar, r stdimage.Rectangle, ch *channels) {
	f := img.Format()
	info := f.Info()
	maxVal := f.MaxSample()

	if info.Packed {
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				dx := 4 * (r.Min.X + x)
				dy := r.Min.Y + y
				img.SetSample(0, dx, dy, quantize(ch[2].At(x, y), maxVal))
				img.SetSample(0, dx+1, dy, quantize(ch[1].At(x, y), maxVal))
				img.SetSample(0, dx+2, dy, quantize(ch[0].At(x, y), maxVal))
				if ch[3] != nil {
					img.SetSample(0, dx+3, dy, quantize(ch[3].At(x, y), maxVal))
				}
			}
		}
		return
	}

	for p := 0; p < info.Planes; p++ {
		if ch[p] == nil {
			continue
		}
		packPlane(img, p, r, ch[p], maxVal)
	}
}

func packPlane(img *image.Planar, p int, r stdimage.Rectangle, src *filter.Plane, maxVal uint32) {
	hx, hy := img.Format().PlaneShift(p)
	if hx == 0 && hy == 0 {
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				img.SetSample(p, r.Min.X+x, r.Min.Y+y, quantize(src.At(x, y), maxVal))
			}
		}
		return
	}

	x0, x1 := r.Min.X>>hx, ceilShift(r.Max.X, hx)
	y0, y1 := r.Min.Y>>hy, ceilShift(r.Max.Y, hy)
	for cy := y0; cy < y1; cy++ {
		by0, by1 := max(cy<<hy, r.Min.Y), min((cy+1)<<hy, r.Max.Y)
		for cx := x0; cx < x1; cx++ {
			bx0, bx1 := max(cx<<hx, r.Min.X), min((cx+1)<<hx, r.Max.X)
			var sum float32
			for y := by0; y < by1; y++ {
				for x := bx0; x < bx1; x++ {
					sum += src.At(x-r.Min.X, y-r.Min.Y)
				}
			}
			n := float32((by1 - by0) * (bx1 - bx0))
			img.SetSample(p, cx, cy, quantize(sum/n, maxVal))
		}
	}
}

// resize scales a plane to w x h through a 16-bit gray image.
func (s *Scaler) resize(p *filter.Plane, w, h int) *filter.Plane {
	src := stdimage.NewGray16(stdimage.Rect(0, 0, p.Width, p.Height))
	for i, v := range p.Pix {
		q := quantize(v, 0xffff)
		src.Pix[2*i] = byte(q >> 8)
		src.Pix[2*i+1] = byte(q)
	}

	dst := stdimage.NewGray16(stdimage.Rect(0, 0, w, h))
	s.interp.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := filter.NewPlane(w, h)
	for i := range out.Pix {
		q := uint16(dst.Pix[2*i])<<8 | uint16(dst.Pix[2*i+1])
		out.Pix[i] = float32(q) / 0xffff
	}
	return out
}

// convertFamily converts the color planes in place from family sf to df.
func convertFamily(ch *channels, sf, df image.Family, conv *color.Converter) {
	if sf == df {
		return
	}
	c0, c1, c2 := ch[0], ch[1], ch[2]
	for i := range c0.Pix {
		a, b, c := float64(c0.Pix[i]), float64(c1.Pix[i]), float64(c2.Pix[i])
		if df == image.FamilyYUV {
			a, b, c = conv.ToYUV(a, b, c)
		} else {
			a, b, c = conv.ToRGB(a, b, c)
		}
		c0.Pix[i], c1.Pix[i], c2.Pix[i] = float32(a), float32(b), float32(c)
	}
}

// applyFilters runs the configured blur and sharpen passes on the color
// planes. Chroma knobs apply to the color difference planes of YUV.
func (s *Scaler) applyFilters(ch *channels, df image.Family) {
	for i := 0; i < 3; i++ {
		if ch[i] == nil {
			continue
		}
		s.stageFor(i, df).Apply(ch[i])
	}
}

// stageFor returns the filter stage for plane i of a df image.
func (s *Scaler) stageFor(i int, df image.Family) filter.Stage {
	if df == image.FamilyYUV && i > 0 {
		return s.chroma
	}
	return s.luma
}

// quantize clamps v to [0,1] and scales it to [0,maxVal] with rounding.
func quantize(v float32, maxVal uint32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return uint16(maxVal)
	}
	return uint16(v*float32(maxVal) + 0.5)
}

func ceilShift(v int, s uint) int {
	return (v + (1 << s) - 1) >> s
}
