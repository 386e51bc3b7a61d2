package syringe

import (
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// resolutionCache is the default ResolutionCache: a mutex-guarded map
// of terminal outcomes with a singleflight group collapsing concurrent
// misses for the same type into one computation. Failed resolutions are
// stored and re-raised on every later lookup; only Clear (or Put)
// discards an outcome.
type resolutionCache struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	desc *Descriptor
	err  error
}

// NewResolutionCache creates an empty resolution cache
func NewResolutionCache() ResolutionCache {
	return &resolutionCache{
		entries: make(map[reflect.Type]*cacheEntry),
	}
}

// GetOrCompute returns the cached outcome for t, computing it at most
// once under concurrent first use.
func (c *resolutionCache) GetOrCompute(t reflect.Type, compute func() (*Descriptor, error)) (*Descriptor, error) {
	c.mu.RLock()
	entry, ok := c.entries[t]
	c.mu.RUnlock()
	if ok {
		return entry.desc, entry.err
	}

	// The group key collapses concurrent misses; the map recheck below
	// keeps the stored outcome authoritative even across key reuse.
	v, _, _ := c.group.Do(typeKey(t), func() (any, error) {
		c.mu.RLock()
		entry, ok := c.entries[t]
		c.mu.RUnlock()
		if ok {
			return entry, nil
		}

		desc, err := compute()
		entry = &cacheEntry{desc: desc, err: err}

		c.mu.Lock()
		if existing, ok := c.entries[t]; ok {
			entry = existing
		} else {
			c.entries[t] = entry
		}
		c.mu.Unlock()
		return entry, nil
	})

	entry = v.(*cacheEntry)
	return entry.desc, entry.err
}

// Put installs a descriptor for t, replacing any stored outcome
func (c *resolutionCache) Put(t reflect.Type, d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t] = &cacheEntry{desc: d}
}

// Clear evicts every stored outcome
func (c *resolutionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[reflect.Type]*cacheEntry)
}

// typeKey derives a flight key from the type's identity. The runtime
// interns reflect.Type descriptors, so the descriptor address is unique
// per type; name-based keys are not, since t.String() elides package
// paths and collides across same-named packages.
func typeKey(t reflect.Type) string {
	return strconv.FormatUint(uint64(reflect.ValueOf(t).Pointer()), 16)
}
