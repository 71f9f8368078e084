package apiclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// TagCache stores query results grouped by tag so a mutation can drop every
// cached read of the resource it touched.
type TagCache struct {
	c *cache.Cache
}

// NewTagCache creates a cache whose entries live for ttl.
func NewTagCache(ttl time.Duration) *TagCache {
	return &TagCache{c: cache.New(ttl, 2*ttl)}
}

func queryKey(tag, key string) string { return tag + "|" + key }

func idKey(tag string, id int64) string { return tag + "#" + strconv.FormatInt(id, 10) }

// Get returns the cached value for key under tag.
func (t *TagCache) Get(tag, key string) (any, bool) {
	return t.c.Get(queryKey(tag, key))
}

// Set stores value for key under tag.
func (t *TagCache) Set(tag, key string, value any) {
	t.c.SetDefault(queryKey(tag, key), value)
}

// GetID returns the cached record id under tag.
func (t *TagCache) GetID(tag string, id int64) (any, bool) {
	return t.c.Get(idKey(tag, id))
}

// SetID caches a single record.
func (t *TagCache) SetID(tag string, id int64, value any) {
	t.c.SetDefault(idKey(tag, id), value)
}

// Invalidate drops every query and record cached under tag.
func (t *TagCache) Invalidate(tag string) {
	for key := range t.c.Items() {
		if strings.HasPrefix(key, tag+"|") || strings.HasPrefix(key, tag+"#") {
			t.c.Delete(key)
		}
	}
}
