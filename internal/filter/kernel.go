package filter

import "math"

// Kernel is a normalized, symmetric 1D Gaussian.
// Taps[0] is the center weight and Taps[i] the weight at distance i on
// either side, so a kernel of radius r has r+1 taps.
type Kernel struct {
	Sigma float64
	Taps  []float32
}

// identity is the one-tap kernel that leaves a plane unchanged.
var identity = Kernel{Taps: []float32{1}}

// NewKernel derives the kernel for sigma, truncated at three sigma.
// A non-positive sigma gives the identity kernel.
func NewKernel(sigma float64) Kernel {
	if sigma <= 0 {
		return identity
	}

	r := int(math.Ceil(3 * sigma))
	taps := make([]float32, r+1)
	weights := make([]float64, r+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for d := range weights {
		weights[d] = math.Exp(-float64(d*d) / twoSigmaSq)
		if d == 0 {
			sum += weights[d]
		} else {
			sum += 2 * weights[d]
		}
	}
	for d, w := range weights {
		taps[d] = float32(w / sum)
	}
	return Kernel{Sigma: sigma, Taps: taps}
}

// Radius returns the number of samples the kernel reaches on each side.
func (k Kernel) Radius() int {
	return len(k.Taps) - 1
}

// IsIdentity reports whether convolving with k is a no-op.
func (k Kernel) IsIdentity() bool {
	return len(k.Taps) <= 1
}

// unsharpKernel is the blur behind Sharpen.
var unsharpKernel = NewKernel(1)

// Stage is the filter chain the scaler runs on one class of plane:
// a Gaussian blur followed by an unsharp mask.
// Stages are immutable and safe for concurrent use.
type Stage struct {
	blur    Kernel
	sharpen float64
}

// NewStage builds a stage blurring with sigma blur and sharpening by
// amount. Non-positive values disable the respective step.
func NewStage(blur, amount float64) Stage {
	return Stage{blur: NewKernel(blur), sharpen: max(amount, 0)}
}

// BlurKernel returns the kernel of the blur step.
func (s Stage) BlurKernel() Kernel {
	return s.blur
}

// SharpenAmount returns the unsharp mask strength, 0 when disabled.
func (s Stage) SharpenAmount() float64 {
	return s.sharpen
}

// IsNoop reports whether Apply leaves every plane unchanged.
func (s Stage) IsNoop() bool {
	return s.blur.IsIdentity() && s.sharpen == 0
}

// Apply runs the stage on p in place.
func (s Stage) Apply(p *Plane) {
	if s.IsNoop() {
		return
	}
	Blur(p, s.blur)
	Sharpen(p, s.sharpen)
}
