// Package filter provides the float sample planes the scaler works on and
// the separable filters applied to them.
//
// Samples are normalized to [0,1] of the source bit depth. Filters:
//   - Gaussian blur (separable, kernels derived once per sigma)
//   - Unsharp-mask sharpening with a fixed one-sample blur
//
// A Stage bundles both for one class of plane; the scaler builds one for
// luma and one for chroma from its configuration.
//
// Edges are handled by clamping (edge extension), so a constant plane
// stays constant under every filter.
package filter
