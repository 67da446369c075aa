// Package cache provides a small generic LRU cache.
//
// The compositor keeps the colorspace converters it derives in a Cache
// keyed by the colorspace parameters, so a stream of frames sharing one
// colorspace derives and inverts its matrices once.
//
//	c := cache.New[color.Params, *color.Converter](8)
//	conv, err := c.GetOrCreate(params, func() (*color.Converter, error) {
//	    return color.NewConverter(params)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
