// Package osd composites subtitle and on-screen-display overlays onto
// planar YUV video frames.
//
// # Overview
//
// An overlay batch holds elements of one payload kind: coverage masks
// painted with a single color (anti-aliased glyphs), or premultiplied
// BGRA bitmaps that are scaled to their display size. A compositing pass
// keeps the destination's pixel format and colorspace.
//
// # Quick Start
//
//	frame, _ := osd.NewImage(1920, 1080, osd.FormatYUV420P)
//
//	batch := &osd.Batch{
//	    Kind: osd.KindCoverage,
//	    Elements: []osd.Element{{
//	        X: 100, Y: 900, W: 64, H: 32, DW: 64, DH: 32,
//	        Payload: osd.Coverage{Mask: mask, Stride: 64, Color: 0xFFFFFF00},
//	    }},
//	}
//
//	report, err := osd.Composite(frame, batch, osd.DefaultColorspace())
//
// # Pipeline
//
// Each pass runs in four steps:
//   - the bounding box of all elements is expanded to the destination's
//     region step and clamped to the frame
//   - that region is converted to a non-subsampled 16-bit working image
//   - every element, in batch order, is normalized and blended into the
//     three color planes of the working image
//   - the working image is converted back into the destination region
//
// Elements that cannot be normalized are logged and skipped; they never
// abort the pass. Later elements paint over earlier ones.
//
// # Blending
//
// Blending is fixed-point source-over with premultiplied sources. With
// a = coverage*globalAlpha in 0..65025:
//
//	varying:  out = (src*g + 127)/255 + (dst*(65025-a) + 32512)/65025
//	constant: out = (color*a + dst*(65025-a) + 32512)/65025
//
// # Concurrency
//
// A Compositor may be shared by goroutines as long as no two passes write
// the same destination image concurrently.
package osd

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
