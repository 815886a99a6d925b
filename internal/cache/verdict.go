package cache

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// DefaultCapacity is the number of documents whose verdicts are remembered
const DefaultCapacity = 50

// indexKey holds the insertion order so capacity survives restarts of a persistent store
const indexKey = keyPrefix + "index"

// Entry is what the verdict cache remembers per document identity
type Entry struct {
	Identity string        `json:"identity"`
	Verdict  model.Verdict `json:"verdict"`
	Meta     model.JobMeta `json:"meta"`
	Keywords []string      `json:"keywords,omitempty"`
	StoredAt time.Time     `json:"stored_at"`
}

// Result converts the entry into the payload handed to presenters
func (e Entry) Result() model.Result {
	return model.Result{
		Identity:  e.Identity,
		Verdict:   e.Verdict,
		Meta:      e.Meta,
		Keywords:  e.Keywords,
		ScannedAt: e.StoredAt,
	}
}

// VerdictCache is a bounded identity -> Entry map with first-in-first-out
// eviction. Re-storing an identity keeps its original position. The oldest
// entry is evicted before an insert that would exceed capacity.
type VerdictCache struct {
	mu       sync.Mutex
	store    Cache
	capacity int
	ttl      time.Duration
	order    []string // identities, oldest first
}

// NewVerdictCache wraps a store. The insertion index is reloaded from the
// store when present.
func NewVerdictCache(store Cache, capacity int, ttl time.Duration) *VerdictCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if store == nil {
		store = NewMemoryCache(ttl, 10*time.Minute)
	}

	c := &VerdictCache{store: store, capacity: capacity, ttl: ttl}
	if data, ok := store.Get(indexKey); ok {
		var order []string
		if err := json.Unmarshal(data, &order); err == nil {
			c.order = order
		}
	}
	// A smaller capacity than last run drops the oldest entries
	for len(c.order) > c.capacity {
		_ = c.store.Delete(CacheKey(c.order[0]))
		c.order = c.order[1:]
	}
	return c
}

// Get returns the entry for an identity
func (c *VerdictCache) Get(identity string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.store.Get(CacheKey(identity))
	if !ok {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Put stores an entry, evicting the oldest identity first when full
func (c *VerdictCache) Put(identity string, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.Identity = identity
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal verdict entry: %w", err)
	}

	if !slices.Contains(c.order, identity) {
		for len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			if err := c.store.Delete(CacheKey(oldest)); err != nil {
				return fmt.Errorf("evict %s: %w", oldest, err)
			}
		}
		c.order = append(c.order, identity)
	}

	if err := c.store.Set(CacheKey(identity), data, c.ttl); err != nil {
		return fmt.Errorf("store verdict entry: %w", err)
	}
	return c.saveIndex()
}

// saveIndex persists the insertion order. Callers hold mu.
func (c *VerdictCache) saveIndex() error {
	data, err := json.Marshal(c.order)
	if err != nil {
		return fmt.Errorf("marshal cache index: %w", err)
	}
	// The index must outlive every entry it lists
	if err := c.store.Set(indexKey, data, -1); err != nil {
		return fmt.Errorf("store cache index: %w", err)
	}
	return nil
}

// Contains reports whether an identity is indexed
func (c *VerdictCache) Contains(identity string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.order, identity)
}

// Len returns the number of indexed identities
func (c *VerdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Capacity returns the configured bound
func (c *VerdictCache) Capacity() int {
	return c.capacity
}

// Keys returns identities oldest first
func (c *VerdictCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.order)
}

// Clear drops every entry and the index
func (c *VerdictCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, identity := range c.order {
		if err := c.store.Delete(CacheKey(identity)); err != nil {
			return err
		}
	}
	c.order = nil
	return c.store.Delete(indexKey)
}
