package osd

import "image"

// planRegion returns the region of dst touched by batch, expanded outward
// to the format's region step and clamped to the image bounds.
// It reports false when there is nothing to composite.
func planRegion(batch *Batch, dst *Image) (image.Rectangle, bool) {
	var box image.Rectangle
	for i := range batch.Elements {
		// Union ignores empty rectangles.
		box = box.Union(batch.Elements[i].Rect())
	}
	if box.Empty() {
		return image.Rectangle{}, false
	}

	sx, sy := dst.Format().RegionStep()
	box = image.Rectangle{
		Min: image.Pt(floorTo(box.Min.X, sx), floorTo(box.Min.Y, sy)),
		Max: image.Pt(ceilTo(box.Max.X, sx), ceilTo(box.Max.Y, sy)),
	}

	box = box.Intersect(dst.Bounds())
	if box.Empty() {
		return image.Rectangle{}, false
	}
	return box, true
}

// floorTo rounds v down to a multiple of step, towards negative infinity.
func floorTo(v, step int) int {
	r := v % step
	if r < 0 {
		r += step
	}
	return v - r
}

// ceilTo rounds v up to a multiple of step.
func ceilTo(v, step int) int {
	return -floorTo(-v, step)
}
