// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

import (
	"sync"

	"rsc.io/rx/syntax"
)

// A Cache memoizes Parse by pattern text and category.
// It is safe for concurrent use. The zero Cache is ready to use.
type Cache struct {
	mu sync.Mutex
	m  map[cacheKey]*cacheEntry
}

type cacheKey struct {
	text string
	cat  syntax.Category
}

type cacheEntry struct {
	p   *Pattern
	err error
}

// Parse returns the cached result of Parse(text, cat),
// parsing the pattern on first use.
func (c *Cache) Parse(text string, cat syntax.Category) (*Pattern, error) {
	key := cacheKey{text, cat}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[key]; ok {
		return e.p, e.err
	}
	if c.m == nil {
		c.m = make(map[cacheKey]*cacheEntry)
	}
	p, err := Parse(text, cat)
	c.m[key] = &cacheEntry{p, err}
	return p, err
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

var defaultCache Cache

// Cached is like Parse but shares results across the process.
// Patterns are immutable, so callers may share them freely.
func Cached(text string, cat syntax.Category) (*Pattern, error) {
	return defaultCache.Parse(text, cat)
}
