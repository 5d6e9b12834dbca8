package tether

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

type entryKey struct {
	library string
	export  string
}

// cache is insert-only. Concurrent first loads of one library share a
// single LoadLibrary call through the singleflight group, and the handle
// is stored before the flight ends.
type cache struct {
	mu        sync.RWMutex
	libraries map[string]uintptr
	entries   map[entryKey]EntryPoint
	loads     singleflight.Group
}

func newCache() *cache {
	return &cache{
		libraries: make(map[string]uintptr),
		entries:   make(map[entryKey]EntryPoint),
	}
}

func (c *cache) entry(library, export string) (EntryPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[entryKey{library, export}]
	return e, ok
}

// storeEntry keeps the first entry stored for a key and returns it.
func (c *cache) storeEntry(library, export string, e EntryPoint) EntryPoint {
	key := entryKey{library, export}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = e
	return e
}

func (c *cache) lookupLibrary(path string) (uintptr, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.libraries[path]
	return h, ok
}

func (c *cache) library(path string, load func() (uintptr, error)) (uintptr, error) {
	if h, ok := c.lookupLibrary(path); ok {
		return h, nil
	}

	v, err, _ := c.loads.Do(path, func() (any, error) {
		// A flight that finished between the lookup above and Do has
		// already stored the handle.
		if h, ok := c.lookupLibrary(path); ok {
			return h, nil
		}
		h, err := load()
		if err != nil {
			return uintptr(0), err
		}
		c.mu.Lock()
		c.libraries[path] = h
		c.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uintptr), nil
}
