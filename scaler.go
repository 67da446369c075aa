package osd

import (
	"image"

	"github.com/gogpu/osd/internal/scale"
)

// Scaler resizes a region of one image into a region of another,
// converting pixel format and color family on the way.
//
// conv describes the frame colorspace and is nil when both images belong
// to the same color family.
type Scaler interface {
	ResizeConvert(dst *Image, dr image.Rectangle, src *Image, sr image.Rectangle, conv *Converter) error
}

// ScalerConfig holds the tuning knobs of the default scaler.
type ScalerConfig = scale.Config

// ScalerFilter selects the resampling kernel of the default scaler.
type ScalerFilter = scale.Filter

// Resampling kernels of the default scaler.
const (
	FilterBicubic      = scale.FilterBicubic
	FilterNearest      = scale.FilterNearest
	FilterFastBilinear = scale.FilterFastBilinear
	FilterBilinear     = scale.FilterBilinear
	FilterGauss        = scale.FilterGauss
	FilterLanczos      = scale.FilterLanczos
)

// MinDirectColorWidth is the narrowest direct-color bitmap the default
// scaler accepts.
const MinDirectColorWidth = scale.MinWidth

// NewScaler returns the default scaler with the given configuration.
func NewScaler(cfg ScalerConfig) Scaler {
	return scale.New(cfg)
}

// ParseScalerFilter returns the filter with the given name, as printed by
// its String method.
func ParseScalerFilter(name string) (ScalerFilter, bool) {
	return scale.ParseFilter(name)
}
