package digest

import (
	"encoding/json"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Cache keeps raw backend responses on disk. Responses for nights that are
// over never expire; the rest are kept for TTL.
type Cache struct {
	d   *diskv.Diskv
	ttl time.Duration
	now func() time.Time
}

type cacheEntry struct {
	Fetched time.Time       `json:"fetched"`
	Body    json.RawMessage `json:"body"`
}

func NewCache(basePath string, ttl time.Duration, memoryBytes uint64) *Cache {
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: memoryBytes,
		}),
		ttl: ttl,
		now: time.Now,
	}
}

func cacheKey(url string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(url))
	return strconv.FormatUint(h.Sum64(), 16)
}

// Get returns the cached body for url. final marks a response that can no
// longer change.
func (c *Cache) Get(url string, final bool) ([]byte, bool) {
	raw, err := c.d.Read(cacheKey(url))
	if err != nil {
		return nil, false
	}
	var e cacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	if !final && c.now().Sub(e.Fetched) > c.ttl {
		return nil, false
	}
	return e.Body, true
}

func (c *Cache) Put(url string, body []byte) error {
	raw, err := json.Marshal(cacheEntry{Fetched: c.now(), Body: body})
	if err != nil {
		return err
	}
	return c.d.Write(cacheKey(url), raw)
}

// Clear removes every cached response.
func (c *Cache) Clear() error {
	return c.d.EraseAll()
}
