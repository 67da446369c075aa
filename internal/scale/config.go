package scale

import (
	"math"

	xdraw "golang.org/x/image/draw"
)

// Filter selects the resampling kernel used when source and destination
// regions differ in size.
type Filter uint8

const (
	// FilterBicubic is Catmull-Rom. This is the default.
	FilterBicubic Filter = iota
	// FilterNearest is nearest neighbor.
	FilterNearest
	// FilterFastBilinear is the approximate bilinear of x/image/draw.
	FilterFastBilinear
	// FilterBilinear is exact bilinear.
	FilterBilinear
	// FilterGauss is a Gaussian kernel.
	FilterGauss
	// FilterLanczos is three-lobe Lanczos.
	FilterLanczos

	filterCount
)

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterBicubic:
		return "bicubic"
	case FilterNearest:
		return "nearest"
	case FilterFastBilinear:
		return "fast-bilinear"
	case FilterBilinear:
		return "bilinear"
	case FilterGauss:
		return "gauss"
	case FilterLanczos:
		return "lanczos"
	default:
		return "unknown"
	}
}

// ParseFilter returns the filter with the given name.
func ParseFilter(name string) (Filter, bool) {
	for f := Filter(0); f < filterCount; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return FilterBicubic, false
}

// Config holds the scaler tuning knobs.
// The zero value is bicubic with no extra filtering.
type Config struct {
	Filter Filter

	// Gaussian blur radius applied after resizing, in samples.
	LumaBlur, ChromaBlur float64

	// Unsharp mask amount applied after blurring.
	LumaSharpen, ChromaSharpen float64
}

var (
	gaussKernel = &xdraw.Kernel{
		Support: 2,
		At: func(t float64) float64 {
			return math.Exp(-2 * t * t)
		},
	}

	lanczosKernel = &xdraw.Kernel{
		Support: 3,
		At: func(t float64) float64 {
			if t == 0 {
				return 1
			}
			x := math.Pi * t
			return 3 * math.Sin(x) * math.Sin(x/3) / (x * x)
		},
	}
)

// interpolator returns the x/image/draw interpolator for f.
func (f Filter) interpolator() xdraw.Interpolator {
	switch f {
	case FilterNearest:
		return xdraw.NearestNeighbor
	case FilterFastBilinear:
		return xdraw.ApproxBiLinear
	case FilterBilinear:
		return xdraw.BiLinear
	case FilterGauss:
		return gaussKernel
	case FilterLanczos:
		return lanczosKernel
	default:
		return xdraw.CatmullRom
	}
}
