package portfolio

import (
	"github.com/coocood/freecache"
)

const (
	listCacheKey        = "portfolio-list"
	listCacheSizeBytes  = 5 * 1024 * 1024
	listCacheTTLSeconds = 60
)

// ListCache keeps the marshaled public list response in memory, the public
// portfolio listing is by far the hottest endpoint. Any mutation
// invalidates it.
type ListCache struct {
	cache *freecache.Cache
}

func NewListCache() *ListCache {
	return &ListCache{
		cache: freecache.NewCache(listCacheSizeBytes),
	}
}

func (c *ListCache) Get() ([]byte, bool) {
	cached, err := c.cache.Get([]byte(listCacheKey))
	if err != nil {
		// freecache returns an error for both missing and expired entries
		return nil, false
	}
	return cached, true
}

func (c *ListCache) Set(response []byte) {
	// a failed set only costs a cache miss later
	_ = c.cache.Set([]byte(listCacheKey), response, listCacheTTLSeconds)
}

func (c *ListCache) Invalidate() {
	c.cache.Del([]byte(listCacheKey))
}
