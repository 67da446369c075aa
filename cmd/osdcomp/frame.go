package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/osd"
)

// newTestFrame fills a frame with a luma ramp and slowly varying chroma.
func newTestFrame(w, h int, f osd.Format) (*osd.Image, error) {
	frame, err := osd.NewImage(w, h, f)
	if err != nil {
		return nil, err
	}
	maxVal := f.MaxSample()
	level := func(num, den int, lo, hi uint32) uint16 {
		v := lo + (hi-lo)*uint32(num)/uint32(max(den, 1))
		return uint16(v * maxVal / 255)
	}

	for p := 0; p < frame.NumPlanes(); p++ {
		pw, ph := frame.PlaneSize(p)
		for y := 0; y < ph; y++ {
			for x := 0; x < pw; x++ {
				var v uint16
				switch p {
				case 0:
					v = level(x, pw-1, 32, 200)
				case 1:
					v = level(y, ph-1, 96, 160)
				case 2:
					v = level(pw-1-x, pw-1, 100, 156)
				default:
					v = uint16(maxVal)
				}
				frame.SetSample(p, x, y, v)
			}
		}
	}
	return frame, nil
}

// savePNG converts the frame to RGB with the scaler and writes it as PNG.
func savePNG(path string, frame *osd.Image, csp osd.ColorspaceParams, cfg osd.ScalerConfig) error {
	conv, err := osd.NewConverter(csp)
	if err != nil {
		return err
	}
	bgra, err := osd.NewImage(frame.Width(), frame.Height(), osd.FormatBGRA8)
	if err != nil {
		return err
	}
	if err := osd.NewScaler(cfg).ResizeConvert(bgra, bgra.Bounds(), frame, frame.Bounds(), conv); err != nil {
		return fmt.Errorf("convert to RGB: %w", err)
	}

	img := image.NewRGBA(bgra.Bounds())
	src, stride := bgra.Plane(0), bgra.Stride(0)
	for y := 0; y < frame.Height(); y++ {
		row := src[y*stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < frame.Width(); x++ {
			out[4*x+0] = row[4*x+2]
			out[4*x+1] = row[4*x+1]
			out[4*x+2] = row[4*x+0]
			out[4*x+3] = 0xff
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// saveRaw writes the planes one after another without row padding.
func saveRaw(path string, frame *osd.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(file)
	var w io.Writer = bw
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		enc, err = zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		w = enc
	}

	if err := writePlanes(w, frame); err != nil {
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writePlanes(w io.Writer, frame *osd.Image) error {
	f := frame.Format()
	for p := 0; p < frame.NumPlanes(); p++ {
		_, ph := frame.PlaneSize(p)
		rowBytes := f.RowBytes(p, frame.Width())
		data, stride := frame.Plane(p), frame.Stride(p)
		for y := 0; y < ph; y++ {
			if _, err := w.Write(data[y*stride : y*stride+rowBytes]); err != nil {
				return err
			}
		}
	}
	return nil
}
