package osd

import "errors"

var (
	// ErrUnsupportedElement is returned when an overlay element cannot be
	// normalized. Compositing skips such elements.
	ErrUnsupportedElement = errors.New("osd: unsupported overlay element")

	// ErrUnsupportedFormat is returned for destination images that are not
	// planar YUV.
	ErrUnsupportedFormat = errors.New("osd: unsupported destination format")

	// ErrNilImage is returned when the destination image is nil.
	ErrNilImage = errors.New("osd: nil destination image")
)
