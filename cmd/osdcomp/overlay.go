package main

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/osd"
)

// shadowColor is black at half transparency.
const shadowColor = 0x00000080

// rasterizeText draws s into an 8-bit coverage mask sized to its ink.
func rasterizeText(s string, size float64) (*image.Alpha, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	bounds, _ := font.BoundString(face, s)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("text %q has no ink", s)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	d.DrawString(s)
	return mask, nil
}

// subtitleBatch centers s near the bottom of the frame with a drop shadow
// painted underneath.
func subtitleBatch(s string, size float64, rgba uint32, frameW, frameH int) (*osd.Batch, error) {
	mask, err := rasterizeText(s, size)
	if err != nil {
		return nil, err
	}
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	x := (frameW - w) / 2
	y := frameH - h - frameH/12
	offset := max(1, int(size/16))

	element := func(x, y int, c uint32) osd.Element {
		return osd.Element{
			X: x, Y: y, W: w, H: h, DW: w, DH: h,
			Payload: osd.Coverage{Mask: mask.Pix, Stride: mask.Stride, Color: c},
		}
	}

	return &osd.Batch{
		Kind: osd.KindCoverage,
		Elements: []osd.Element{
			element(x+offset, y+offset, shadowColor),
			element(x, y, rgba),
		},
	}, nil
}

// badgeBatch returns a premultiplied BGRA disc drawn at natural size 48x48
// and displayed at twice that size in the top-right corner.
func badgeBatch(frameW int) *osd.Batch {
	const n = 48
	pix := make([]byte, 4*n*n)
	c := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			// 1px anti-aliased edge
			a := math.Min(1, math.Max(0, c-d+0.5))
			r := 0.2 + 0.8*float64(x)/n
			g := 0.4
			b := 1 - 0.8*float64(y)/n
			i := 4 * (y*n + x)
			pix[i+0] = byte(b*a*255 + 0.5)
			pix[i+1] = byte(g*a*255 + 0.5)
			pix[i+2] = byte(r*a*255 + 0.5)
			pix[i+3] = byte(a*255 + 0.5)
		}
	}

	return &osd.Batch{
		Kind: osd.KindDirectColor,
		Elements: []osd.Element{{
			X: frameW - 2*n - 24, Y: 24,
			W: n, H: n, DW: 2 * n, DH: 2 * n,
			Payload: osd.DirectColor{Pixels: pix, Stride: 4 * n},
		}},
	}
}
