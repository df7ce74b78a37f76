package classify

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/provider"
)

// Default cache timings.
const (
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

type cached struct {
	result Result
	ok     bool
}

// Cached memoizes another Classifier by normalized part number, including
// negative results. Returned results are copies.
type Cached struct {
	next  Classifier
	cache *gocache.Cache
}

// NewCached wraps next. Zero durations select the defaults.
func NewCached(next Classifier, ttl, cleanup time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, cleanup),
	}
}

// Classify implements Classifier.
func (c *Cached) Classify(mpn string) (Result, bool) {
	key := pattern.Normalize(mpn)
	if v, found := c.cache.Get(key); found {
		if e, ok := v.(cached); ok {
			r := e.result.Clone()
			if e.ok {
				r.MPN = mpn
			}
			return r, e.ok
		}
	}

	r, ok := c.next.Classify(mpn)
	c.cache.Set(key, cached{result: r.Clone(), ok: ok}, gocache.DefaultExpiration)
	return r, ok
}

// Provider implements Classifier.
func (c *Cached) Provider(id string) (provider.Provider, bool) {
	return c.next.Provider(id)
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

// Flush drops all cached entries.
func (c *Cached) Flush() {
	c.cache.Flush()
}

var _ Classifier = (*Cached)(nil)
