package scale

import (
	"errors"
	stdimage "image"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/osd/internal/color"
	"github.com/gogpu/osd/internal/image"
)

func newImage(t testing.TB, w, h int, f image.Format) *image.Planar {
	t.Helper()
	img, err := image.NewPlanar(w, h, f)
	if err != nil {
		t.Fatalf("NewPlanar(%d, %d, %v): %v", w, h, f, err)
	}
	return img
}

func randomImage(t testing.TB, w, h int, f image.Format, seed uint64) *image.Planar {
	t.Helper()
	img := newImage(t, w, h, f)
	rng := rand.New(rand.NewPCG(seed, 2))
	for p := 0; p < img.NumPlanes(); p++ {
		pw, ph := img.PlaneSize(p)
		for y := range ph {
			for x := range pw {
				img.SetSample(p, x, y, uint16(rng.UintN(uint(f.MaxSample())+1)))
			}
		}
	}
	return img
}

func defaultConverter(t testing.TB) *color.Converter {
	t.Helper()
	conv, err := color.NewConverter(color.DefaultParams())
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv
}

func TestResizeConvert_RoundTripLossless(t *testing.T) {
	formats := []image.Format{
		image.FormatYUV420P,
		image.FormatYUV422P,
		image.FormatYUV410P,
		image.FormatYUV444P,
		image.FormatYUV420P16,
	}

	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			frame := randomImage(t, 64, 16, f, 1)
			work := newImage(t, 64, 16, image.FormatYUV444P16)
			out := newImage(t, 64, 16, f)
			s := New(Config{})

			if err := s.ResizeConvert(work, work.Bounds(), frame, frame.Bounds(), nil); err != nil {
				t.Fatalf("extract: %v", err)
			}
			if err := s.ResizeConvert(out, out.Bounds(), work, work.Bounds(), nil); err != nil {
				t.Fatalf("write back: %v", err)
			}
			if !out.Equal(frame) {
				t.Error("round trip through YUV444P16 changed the image")
			}
		})
	}
}

func TestResizeConvert_SubRegion(t *testing.T) {
	frame := randomImage(t, 96, 8, image.FormatYUV420P, 3)
	orig := frame.Clone()
	r := stdimage.Rect(32, 2, 64, 6)
	work := newImage(t, r.Dx(), r.Dy(), image.FormatYUV444P16)
	s := New(Config{})

	if err := s.ResizeConvert(work, work.Bounds(), frame, r, nil); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if err := s.ResizeConvert(frame, r, work, work.Bounds(), nil); err != nil {
		t.Fatalf("write back: %v", err)
	}
	if !frame.Equal(orig) {
		t.Fatal("unmodified write back changed the frame")
	}

	work.FillPlane(0, 0)
	if err := s.ResizeConvert(frame, r, work, work.Bounds(), nil); err != nil {
		t.Fatalf("write back: %v", err)
	}
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			got := frame.Sample(0, x, y)
			if stdimage.Pt(x, y).In(r) {
				if got != 0 {
					t.Fatalf("luma at (%d,%d) = %d, want 0", x, y, got)
				}
			} else if want := orig.Sample(0, x, y); got != want {
				t.Fatalf("luma outside region at (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestResizeConvert_RegionErrors(t *testing.T) {
	frame := newImage(t, 40, 6, image.FormatYUV420P)
	work := newImage(t, 32, 4, image.FormatYUV444P16)

	tests := []struct {
		name string
		sr   stdimage.Rectangle
		dr   stdimage.Rectangle
		want error
	}{
		{"misaligned x", stdimage.Rect(2, 0, 34, 4), work.Bounds(), ErrRegion},
		{"misaligned y", stdimage.Rect(0, 1, 32, 5), work.Bounds(), ErrRegion},
		{"misaligned end", stdimage.Rect(0, 0, 30, 4), stdimage.Rect(0, 0, 30, 4), ErrRegion},
		{"out of bounds", stdimage.Rect(32, 0, 64, 4), work.Bounds(), ErrRegion},
		{"empty", stdimage.Rect(0, 0, 0, 0), work.Bounds(), ErrRegion},
		{"destination outside", stdimage.Rect(0, 0, 32, 4), stdimage.Rect(0, 0, 40, 4), ErrRegion},
		{"end at image edge", stdimage.Rect(32, 0, 40, 6), stdimage.Rect(0, 0, 8, 4), nil},
		{"aligned", stdimage.Rect(0, 2, 32, 6), work.Bounds(), nil},
	}

	s := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ResizeConvert(work, tt.dr, frame, tt.sr, nil)
			if tt.want == nil {
				if err != nil {
					t.Errorf("ResizeConvert() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ResizeConvert() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResizeConvert_TooNarrow(t *testing.T) {
	bgra := newImage(t, MinWidth-1, 4, image.FormatBGRA8)
	dst := newImage(t, MinWidth-1, 4, image.FormatYUV444P16)

	err := New(Config{}).ResizeConvert(dst, dst.Bounds(), bgra, bgra.Bounds(), defaultConverter(t))
	if !errors.Is(err, ErrTooNarrow) {
		t.Errorf("ResizeConvert() error = %v, want ErrTooNarrow", err)
	}
}

func TestResizeConvert_ConversionErrors(t *testing.T) {
	gray := newImage(t, 8, 8, image.FormatGray8)
	bgra := newImage(t, 8, 8, image.FormatBGRA8)
	yuv := newImage(t, 8, 8, image.FormatYUV444P16)
	s := New(Config{})

	if err := s.ResizeConvert(yuv, yuv.Bounds(), gray, gray.Bounds(), defaultConverter(t)); !errors.Is(err, ErrConversion) {
		t.Errorf("gray to YUV error = %v, want ErrConversion", err)
	}
	if err := s.ResizeConvert(yuv, yuv.Bounds(), bgra, bgra.Bounds(), nil); !errors.Is(err, ErrConversion) {
		t.Errorf("BGRA to YUV without converter error = %v, want ErrConversion", err)
	}
}

func TestResizeConvert_BGRAToYUV(t *testing.T) {
	tests := []struct {
		name       string
		b, g, r    byte
		wantY      uint16
		wantU      uint16
		wantV      uint16
		wantOpaque bool
	}{
		{"white", 255, 255, 255, 235 * 257, 128 * 257, 128 * 257, true},
		{"black", 0, 0, 0, 16 * 257, 128 * 257, 128 * 257, true},
	}

	conv := defaultConverter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bgra := newImage(t, 8, 2, image.FormatBGRA8)
			for y := 0; y < 2; y++ {
				for x := 0; x < 8; x++ {
					bgra.SetSample(0, 4*x, y, uint16(tt.b))
					bgra.SetSample(0, 4*x+1, y, uint16(tt.g))
					bgra.SetSample(0, 4*x+2, y, uint16(tt.r))
					bgra.SetSample(0, 4*x+3, y, 255)
				}
			}
			dst := newImage(t, 8, 2, image.FormatYUV444P16)

			if err := New(Config{}).ResizeConvert(dst, dst.Bounds(), bgra, bgra.Bounds(), conv); err != nil {
				t.Fatalf("ResizeConvert: %v", err)
			}

			want := [3]uint16{tt.wantY, tt.wantU, tt.wantV}
			for p := 0; p < 3; p++ {
				got := dst.Sample(p, 3, 1)
				if diff := int(got) - int(want[p]); diff < -2 || diff > 2 {
					t.Errorf("plane %d = %d, want %d", p, got, want[p])
				}
			}
		})
	}
}

func TestResizeConvert_ResizeConstant(t *testing.T) {
	for f := Filter(0); f < filterCount; f++ {
		t.Run(f.String(), func(t *testing.T) {
			src := newImage(t, 8, 8, image.FormatGray8)
			src.FillPlane(0, 200)
			dst := newImage(t, 19, 5, image.FormatGray8)

			if err := New(Config{Filter: f}).ResizeConvert(dst, dst.Bounds(), src, src.Bounds(), nil); err != nil {
				t.Fatalf("ResizeConvert: %v", err)
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 19; x++ {
					if got := dst.Sample(0, x, y); got != 200 {
						t.Fatalf("(%d,%d) = %d, want 200", x, y, got)
					}
				}
			}
		})
	}
}

func TestResizeConvert_NearestUpscale(t *testing.T) {
	src := newImage(t, 8, 1, image.FormatGray8)
	for x := 0; x < 8; x++ {
		src.SetSample(0, x, 0, uint16(x*30))
	}
	dst := newImage(t, 16, 1, image.FormatGray8)

	if err := New(Config{Filter: FilterNearest}).ResizeConvert(dst, dst.Bounds(), src, src.Bounds(), nil); err != nil {
		t.Fatalf("ResizeConvert: %v", err)
	}
	for x := 0; x < 16; x++ {
		if got, want := dst.Sample(0, x, 0), uint16(x/2*30); got != want {
			t.Errorf("x=%d: got %d, want %d", x, got, want)
		}
	}
}

func TestResizeConvert_AlphaPreserved(t *testing.T) {
	frame := randomImage(t, 32, 4, image.FormatYUVA420P, 5)
	frame.FillPlane(3, 77)
	work := newImage(t, 32, 4, image.FormatYUV444P16)
	s := New(Config{})

	if err := s.ResizeConvert(work, work.Bounds(), frame, frame.Bounds(), nil); err != nil {
		t.Fatalf("extract: %v", err)
	}
	work.FillPlane(0, 0)
	if err := s.ResizeConvert(frame, frame.Bounds(), work, work.Bounds(), nil); err != nil {
		t.Fatalf("write back: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 32; x++ {
			if got := frame.Sample(3, x, y); got != 77 {
				t.Fatalf("alpha at (%d,%d) = %d, want 77", x, y, got)
			}
		}
	}
}

func TestResizeConvert_AlphaCopied(t *testing.T) {
	src := randomImage(t, 32, 4, image.FormatYUVA420P, 7)
	dst := newImage(t, 32, 4, image.FormatYUVA420P)

	if err := New(Config{}).ResizeConvert(dst, dst.Bounds(), src, src.Bounds(), nil); err != nil {
		t.Fatalf("ResizeConvert: %v", err)
	}
	if !dst.Equal(src) {
		t.Error("same format copy differs from source")
	}
}

func TestResizeConvert_LumaBlurOnly(t *testing.T) {
	src := newImage(t, 16, 16, image.FormatYUV444P16)
	src.FillPlane(0, 0)
	src.SetSample(0, 8, 8, 0xffff)
	src.FillPlane(1, 0x8000)
	src.SetSample(1, 8, 8, 0xffff)
	dst := newImage(t, 16, 16, image.FormatYUV444P16)

	s := New(Config{LumaBlur: 1})
	if err := s.ResizeConvert(dst, dst.Bounds(), src, src.Bounds(), nil); err != nil {
		t.Fatalf("ResizeConvert: %v", err)
	}
	if got := dst.Sample(0, 8, 8); got == 0xffff {
		t.Error("luma impulse was not blurred")
	}
	if got := dst.Sample(0, 9, 8); got == 0 {
		t.Error("luma neighbor received nothing")
	}
	if got := dst.Sample(1, 8, 8); got != 0xffff {
		t.Errorf("chroma impulse = %d, want untouched 65535", got)
	}
}

func TestNew_FilterStages(t *testing.T) {
	s := New(Config{LumaBlur: 1, ChromaBlur: 2.5, LumaSharpen: 0.5})

	tests := []struct {
		name    string
		plane   int
		family  image.Family
		radius  int
		sharpen float64
	}{
		{"yuv luma", 0, image.FamilyYUV, 3, 0.5},
		{"yuv chroma u", 1, image.FamilyYUV, 8, 0},
		{"yuv chroma v", 2, image.FamilyYUV, 8, 0},
		{"rgb blue uses luma knobs", 2, image.FamilyRGB, 3, 0.5},
		{"gray", 0, image.FamilyGray, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := s.stageFor(tt.plane, tt.family)
			if got := st.BlurKernel().Radius(); got != tt.radius {
				t.Errorf("blur radius = %d, want %d", got, tt.radius)
			}
			if got := st.SharpenAmount(); got != tt.sharpen {
				t.Errorf("sharpen = %v, want %v", got, tt.sharpen)
			}
		})
	}

	if !New(Config{}).chroma.IsNoop() || !New(Config{}).luma.IsNoop() {
		t.Error("zero config should not filter")
	}
}

func TestParseFilter(t *testing.T) {
	for f := Filter(0); f < filterCount; f++ {
		got, ok := ParseFilter(f.String())
		if !ok || got != f {
			t.Errorf("ParseFilter(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFilter("sinc"); ok {
		t.Error("ParseFilter(\"sinc\") should fail")
	}
}

func BenchmarkResizeConvert_Extract(b *testing.B) {
	frame := randomImage(b, 1280, 720, image.FormatYUV420P, 1)
	work := newImage(b, 1280, 720, image.FormatYUV444P16)
	s := New(Config{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.ResizeConvert(work, work.Bounds(), frame, frame.Bounds(), nil)
	}
}
