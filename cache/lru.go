package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRU is a size-bounded cache with hit/miss accounting and a
// load-through helper.
type LRU struct {
	cache *lru.Cache
	stats Stats
}

// NewLRU creates an LRU cache holding at most maxSize entries. A
// maxSize below 16 is raised to 16.
func NewLRU(maxSize int) *LRU {
	if maxSize < 16 {
		maxSize = 16
	}
	c, _ := lru.New(maxSize)
	return &LRU{cache: c}
}

// Get returns the cached value for key.
func (l *LRU) Get(key any) (any, bool) {
	v, ok := l.cache.Get(key)
	if ok {
		l.stats.Hit()
	} else {
		l.stats.Miss()
	}
	return v, ok
}

// Add caches value under key.
func (l *LRU) Add(key, value any) {
	l.cache.Add(key, value)
}

// Remove drops key from the cache.
func (l *LRU) Remove(key any) {
	l.cache.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU) Len() int {
	return l.cache.Len()
}

// Loader loads the value for key on a cache miss.
type Loader func(key any) (any, error)

// GetOrLoad returns the cached value for key, calling load and caching
// its result if the key is missing.
func (l *LRU) GetOrLoad(key any, load Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := load(key)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, v)
	return v, nil
}

// Stats returns the cache's hit/miss accounting.
func (l *LRU) Stats() *Stats {
	return &l.stats
}
