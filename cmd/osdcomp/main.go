// Command osdcomp demonstrates the osd compositing engine.
//
// It renders a line of subtitle text into coverage masks, composites it
// with a drop shadow and a scaled BGRA badge onto a synthetic video frame,
// and writes a PNG preview and optionally the raw planes.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/osd"
)

func main() {
	var (
		width   = flag.Int("width", 1280, "frame width")
		height  = flag.Int("height", 720, "frame height")
		format  = flag.String("format", "yuv420p", "frame pixel format")
		text    = flag.String("text", "The quick brown fox jumps over the lazy dog", "subtitle text")
		size    = flag.Float64("size", 42, "font size in pixels")
		color   = flag.String("color", "ffffff00", "text color as RRGGBBAA, AA is transparency")
		filter  = flag.String("filter", "bicubic", "scaler filter: nearest, fast-bilinear, bilinear, bicubic, gauss, lanczos")
		depth   = flag.Int("depth", 16, "working depth, 8 or 16")
		sharpen = flag.Float64("sharpen", 0, "luma sharpen amount applied when scaling bitmaps")
		output  = flag.String("output", "osd.png", "PNG preview file")
		raw     = flag.String("raw", "", "raw planar output file, zstd-compressed if it ends in .zst")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	osd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	f, ok := parseFormat(*format)
	if !ok {
		log.Fatalf("Unknown format %q", *format)
	}
	filt, ok := osd.ParseScalerFilter(*filter)
	if !ok {
		log.Fatalf("Unknown filter %q", *filter)
	}
	rgba, err := strconv.ParseUint(strings.TrimPrefix(*color, "#"), 16, 32)
	if err != nil {
		log.Fatalf("Invalid color %q: %v", *color, err)
	}

	frame, err := newTestFrame(*width, *height, f)
	if err != nil {
		log.Fatalf("Failed to create frame: %v", err)
	}

	csp := osd.DefaultColorspace()
	scalerConfig := osd.ScalerConfig{Filter: filt, LumaSharpen: *sharpen}
	c := osd.New(osd.WithWorkingDepth(*depth), osd.WithScalerConfig(scalerConfig))

	subs, err := subtitleBatch(*text, *size, uint32(rgba), *width, *height)
	if err != nil {
		log.Fatalf("Failed to render text: %v", err)
	}
	report, err := c.Composite(frame, subs, csp)
	if err != nil {
		log.Fatalf("Failed to composite subtitles: %v", err)
	}
	log.Printf("Subtitles: region %v, %d blended, %d skipped\n", report.Region, report.Blended, report.Skipped)

	report, err = c.Composite(frame, badgeBatch(*width), csp)
	if err != nil {
		log.Fatalf("Failed to composite badge: %v", err)
	}
	log.Printf("Badge: region %v, %d blended, %d skipped\n", report.Region, report.Blended, report.Skipped)

	if err := savePNG(*output, frame, csp, scalerConfig); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Preview saved to %s (%dx%d %v)\n", *output, *width, *height, f)

	if *raw != "" {
		if err := saveRaw(*raw, frame); err != nil {
			log.Fatalf("Failed to save raw planes: %v", err)
		}
		log.Printf("Raw planes saved to %s\n", *raw)
	}
}

var frameFormats = []osd.Format{
	osd.FormatYUV410P,
	osd.FormatYUV411P,
	osd.FormatYUV420P,
	osd.FormatYUV422P,
	osd.FormatYUV440P,
	osd.FormatYUV444P,
	osd.FormatYUVA420P,
	osd.FormatYUV420P16,
	osd.FormatYUV422P16,
	osd.FormatYUV444P16,
}

func parseFormat(name string) (osd.Format, bool) {
	for _, f := range frameFormats {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return 0, false
}
