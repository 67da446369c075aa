package filter

import "testing"

func TestBlurUniformPlaneUnchanged(t *testing.T) {
	p := createTestPlane(13, 7, 0.25)

	Blur(p, NewKernel(2.5))

	for i, v := range p.Pix {
		if absf32(v-0.25) > 1e-5 {
			t.Fatalf("Pix[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestBlurZeroRadiusNoop(t *testing.T) {
	p := NewPlane(4, 4)
	p.Set(1, 1, 1)

	Blur(p, NewKernel(0))
	Blur(p, NewKernel(-3))
	Blur(nil, NewKernel(1))

	if p.At(1, 1) != 1 || p.At(0, 0) != 0 {
		t.Errorf("Blur with non-positive radius modified the plane")
	}
}

func TestBlurSpreadsImpulse(t *testing.T) {
	p := NewPlane(15, 15)
	p.Set(7, 7, 1)

	Blur(p, NewKernel(1.5))

	center := p.At(7, 7)
	if center >= 1 || center <= 0 {
		t.Errorf("center = %v, want in (0,1)", center)
	}
	if p.At(8, 7) <= 0 || p.At(7, 8) <= 0 {
		t.Error("neighbors should receive energy")
	}
	if p.At(8, 7) >= center {
		t.Error("neighbor should be smaller than center")
	}
	if absf32(p.At(6, 7)-p.At(8, 7)) > 1e-6 || absf32(p.At(7, 6)-p.At(8, 7)) > 1e-6 {
		t.Error("blur should be symmetric")
	}
	// Impulse far from the edges keeps its energy.
	if s := planeSum(p); s < 0.999 || s > 1.001 {
		t.Errorf("sum = %v, want ~1", s)
	}
}

func TestBlurSinglePixel(t *testing.T) {
	p := createTestPlane(1, 1, 0.5)

	Blur(p, NewKernel(4))

	if absf32(p.Pix[0]-0.5) > 1e-5 {
		t.Errorf("1x1 plane = %v, want 0.5", p.Pix[0])
	}
}

func TestSharpenUniformPlaneUnchanged(t *testing.T) {
	p := createTestPlane(9, 9, 0.75)

	Sharpen(p, 1.5)

	for i, v := range p.Pix {
		if absf32(v-0.75) > 1e-5 {
			t.Fatalf("Pix[%d] = %v, want 0.75", i, v)
		}
	}
}

func TestSharpenIncreasesEdgeContrast(t *testing.T) {
	p := NewPlane(16, 4)
	for y := 0; y < 4; y++ {
		for x := 8; x < 16; x++ {
			p.Set(x, y, 0.5)
		}
	}

	Sharpen(p, 1)

	if p.At(7, 1) >= 0 {
		t.Errorf("dark side of edge = %v, want undershoot below 0", p.At(7, 1))
	}
	if p.At(8, 1) <= 0.5 {
		t.Errorf("bright side of edge = %v, want overshoot above 0.5", p.At(8, 1))
	}
	if absf32(p.At(0, 1)) > 1e-5 || absf32(p.At(15, 1)-0.5) > 1e-5 {
		t.Error("flat areas away from the edge should be unchanged")
	}
}

func TestSharpenZeroAmountNoop(t *testing.T) {
	p := NewPlane(4, 1)
	p.Set(2, 0, 1)

	Sharpen(p, 0)

	if p.At(2, 0) != 1 || p.At(1, 0) != 0 {
		t.Error("Sharpen(0) modified the plane")
	}
}

func TestTempBufferZeroed(t *testing.T) {
	buf := getTempBuffer(64)
	for i := range buf {
		buf[i] = 1
	}
	putTempBuffer(buf)

	buf = getTempBuffer(64)
	defer putTempBuffer(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func BenchmarkBlur(b *testing.B) {
	for _, r := range []float64{0.5, 1, 3} {
		b.Run(fmtRadius(r), func(b *testing.B) {
			p := createTestPlane(256, 256, 0.5)
			k := NewKernel(r)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Blur(p, k)
			}
		})
	}
}
