// Package scale resizes and converts regions between planar images.
//
// A conversion runs in four steps: the source region is unpacked into
// full resolution float planes (chroma replicated, samples normalized to
// [0,1]), the planes are resized with golang.org/x/image/draw, the color
// family is converted, and the result is filtered and packed into the
// destination region (chroma box-averaged, samples rounded).
//
// Regions must lie inside their image and start on the format's region
// step. The end of a region must also be on the step unless it touches
// the right or bottom edge of the image.
package scale
