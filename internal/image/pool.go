package image

import "sync"

// Pool is a thread-safe pool for reusing Planar instances.
//
// Pool groups buffers by their dimensions and format. The compositor takes
// its working image and per-element temporaries from a pool and returns
// them at the end of every pass, so steady-state playback does not allocate.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Planar
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of images with the same size and format.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a new image buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Planar),
		maxSize: maxPerBucket,
	}
}

// Get retrieves an image from the pool or allocates a new one.
// Images handed out by Get are always zeroed.
// Returns nil if the dimensions or format are invalid.
func (p *Pool) Get(width, height int, format Format) *Planar {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		img := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return img
	}
	p.mu.Unlock()

	img, err := NewPlanar(width, height, format)
	if err != nil {
		return nil
	}
	return img
}

// Put returns an image to the pool for reuse.
// The image is cleared before being stored. Images wrapping caller memory
// (see FromPlanes) are never retained, and neither is nil.
func (p *Pool) Put(img *Planar) {
	if img == nil || !img.owned {
		return
	}

	img.Clear()

	key := poolKey{
		width:  img.width,
		height: img.height,
		format: img.format,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8)

// Default returns the package-level pool.
func Default() *Pool {
	return defaultPool
}
