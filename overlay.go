package osd

import "image"

// PayloadKind tags the payload variant shared by all elements of a batch.
type PayloadKind uint8

const (
	// KindCoverage elements carry an 8-bit coverage mask and one color.
	KindCoverage PayloadKind = iota
	// KindDirectColor elements carry a premultiplied BGRA bitmap.
	KindDirectColor
)

// String returns a string representation of the payload kind.
func (k PayloadKind) String() string {
	switch k {
	case KindCoverage:
		return "coverage"
	case KindDirectColor:
		return "direct-color"
	default:
		return "unknown"
	}
}

// Payload is the pixel data of an overlay element.
// It is implemented by Coverage and DirectColor only.
type Payload interface {
	Kind() PayloadKind
	payload()
}

// DirectColor is a premultiplied BGRA8 bitmap at the element's natural
// size (W x H). It is scaled to the display size when composited.
type DirectColor struct {
	Pixels []byte
	Stride int // bytes per row, at least 4*W
}

// Kind returns KindDirectColor.
func (DirectColor) Kind() PayloadKind { return KindDirectColor }
func (DirectColor) payload()          {}

// Coverage is an 8-bit coverage mask at display size painted with a
// single color.
type Coverage struct {
	Mask   []byte
	Stride int // bytes per row, at least W

	// Color is packed 0xRRGGBBAA. AA is transparency: 0 is opaque and
	// 255 makes the element invisible.
	Color uint32
}

// Kind returns KindCoverage.
func (Coverage) Kind() PayloadKind { return KindCoverage }
func (Coverage) payload()          {}

// Element is one overlay bitmap positioned on the destination frame.
type Element struct {
	// X, Y is the top-left corner in destination pixels. It may be negative.
	X, Y int

	// DW, DH is the display size.
	DW, DH int

	// W, H is the natural size of the payload.
	W, H int

	Payload Payload
}

// Rect returns the destination rectangle of the element.
// A non-positive display size gives an empty rectangle.
func (e *Element) Rect() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(e.X, e.Y),
		Max: image.Pt(e.X+e.DW, e.Y+e.DH),
	}
}

// Batch is an ordered list of overlay elements sharing one payload kind.
// Later elements paint over earlier ones.
type Batch struct {
	Kind PayloadKind

	// Prescaled marks direct-color elements that are already at display
	// size (W == DW and H == DH). Coverage masks are always at display
	// size, so a prescaled coverage batch is rejected element by element.
	Prescaled bool

	Elements []Element
}
