package osd

import (
	"image"
	"testing"

	"github.com/gogpu/osd/internal/scale"
)

// mockScaler is a test scaler for DI testing.
type mockScaler struct {
	called bool
}

func (m *mockScaler) ResizeConvert(dst *Image, dr image.Rectangle, src *Image, sr image.Rectangle, conv *Converter) error {
	m.called = true
	return nil
}

// TestNewDefault tests that New uses the default scaler and a 16-bit working image.
func TestNewDefault(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.scaler == nil {
		t.Error("scaler is nil, expected default scaler")
	}
	if c.pool == nil {
		t.Error("pool is nil, expected private pool")
	}
	if got := c.WorkingFormat(); got != FormatYUV444P16 {
		t.Errorf("WorkingFormat() = %v, want %v", got, FormatYUV444P16)
	}
}

// TestNewWithScaler tests dependency injection of a custom scaler.
func TestNewWithScaler(t *testing.T) {
	mock := &mockScaler{}

	c := New(WithScaler(mock), WithScalerConfig(ScalerConfig{Filter: FilterLanczos}))
	if c.scaler != mock {
		t.Fatal("scaler is not the injected mock scaler")
	}

	frame := mustImage(t, 16, 16, FormatYUV420P)
	batch := &Batch{Kind: KindCoverage, Elements: []Element{coverageElement(0, 0, 4, 4, opaqueRed, 255)}}
	if _, err := c.Composite(frame, batch, DefaultColorspace()); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !mock.called {
		t.Error("Composite did not use the injected scaler")
	}
}

func TestWithWorkingDepth(t *testing.T) {
	tests := []struct {
		bits int
		want Format
	}{
		{8, FormatYUV444P},
		{16, FormatYUV444P16},
		{10, FormatYUV444P16},
		{0, FormatYUV444P16},
	}

	for _, tt := range tests {
		if got := New(WithWorkingDepth(tt.bits)).WorkingFormat(); got != tt.want {
			t.Errorf("WithWorkingDepth(%d): WorkingFormat() = %v, want %v", tt.bits, got, tt.want)
		}
	}
}

func TestWithPool(t *testing.T) {
	p := NewPool(2)

	a := New(WithPool(p))
	b := New(WithPool(p))
	if a.pool != p || b.pool != p {
		t.Error("compositors do not share the given pool")
	}

	if c := New(WithPool(nil)); c.pool == nil {
		t.Error("WithPool(nil) left the compositor without a pool")
	}
}

// TestMultipleOptions tests combining options; later options win.
func TestMultipleOptions(t *testing.T) {
	c := New(WithWorkingDepth(8), WithWorkingDepth(16), WithScalerConfig(ScalerConfig{Filter: FilterNearest}))
	if got := c.WorkingFormat(); got != FormatYUV444P16 {
		t.Errorf("WorkingFormat() = %v, want %v", got, FormatYUV444P16)
	}

	s, ok := c.scaler.(*scale.Scaler)
	if !ok {
		t.Fatalf("scaler is %T, want *scale.Scaler", c.scaler)
	}
	if got := s.Config().Filter; got != FilterNearest {
		t.Errorf("scaler filter = %v, want %v", got, FilterNearest)
	}
}
