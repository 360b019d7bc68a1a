package colorspace

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

// Converter memoizes HexToOKLCH through a bounded LRU cache. Themes repeat
// the same handful of hex values across roles, so the cache stays tiny in
// practice; the bound only guards against unbounded admin experimentation.
type Converter struct {
	cache *lru.Cache[string, string]
}

// NewConverter builds a converter with the given cache capacity.
func NewConverter(size int) *Converter {
	if size <= 0 {
		size = defaultCacheSize
	}
	// lru.New only errors on a non-positive size, which is excluded above.
	cache, _ := lru.New[string, string](size)
	return &Converter{cache: cache}
}

// Convert returns the oklch() literal for hex, computing it at most once
// per cached input. Malformed input is cached too; the fallback is as
// stable an answer as any.
func (c *Converter) Convert(hex string) string {
	if cached, ok := c.cache.Get(hex); ok {
		return cached
	}
	result := HexToOKLCH(hex)
	c.cache.Add(hex, result)
	return result
}

// Len reports how many distinct inputs are currently cached.
func (c *Converter) Len() int {
	return c.cache.Len()
}
