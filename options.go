package osd

// Option configures a Compositor during creation.
// Use functional options to customize Compositor behavior.
//
// Example:
//
//	// Default bicubic scaler, 16-bit working image
//	c := osd.New()
//
//	// Lanczos scaling with 8-bit working precision
//	c := osd.New(
//	    osd.WithScalerConfig(osd.ScalerConfig{Filter: osd.FilterLanczos}),
//	    osd.WithWorkingDepth(8),
//	)
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	scaler       Scaler
	scalerConfig ScalerConfig
	workingDepth int
	pool         *Pool
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		scaler:       nil, // Will be built from scalerConfig if nil
		workingDepth: 16,
		pool:         nil, // Will be created if nil
	}
}

// WithScaler sets a custom scaler for the Compositor.
// Use this to inject an alternative resampler; it takes precedence over
// WithScalerConfig.
func WithScaler(s Scaler) Option {
	return func(o *options) {
		o.scaler = s
	}
}

// WithScalerConfig configures the default scaler.
//
// Example:
//
//	c := osd.New(osd.WithScalerConfig(osd.ScalerConfig{
//	    Filter:      osd.FilterBilinear,
//	    LumaSharpen: 0.5,
//	}))
func WithScalerConfig(cfg ScalerConfig) Option {
	return func(o *options) {
		o.scalerConfig = cfg
	}
}

// WithWorkingDepth sets the sample depth of the working image: 16 (the
// default) or 8. Other values are ignored.
//
// An 8-bit working image halves the memory touched per pass but rounds
// after every blend. It only applies to 8-bit destinations; 16-bit
// frames are always composited at 16 bits.
func WithWorkingDepth(bits int) Option {
	return func(o *options) {
		if bits == 8 || bits == 16 {
			o.workingDepth = bits
		}
	}
}

// WithPool shares a buffer pool between compositors.
// By default every Compositor owns its pool.
func WithPool(p *Pool) Option {
	return func(o *options) {
		if p != nil {
			o.pool = p
		}
	}
}
