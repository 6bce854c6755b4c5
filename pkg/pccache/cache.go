// Package pccache provides response caches for the PubChem client.
// A cache stores raw PUG REST response bodies keyed by the exact
// request URL, so repeated lookups skip the network entirely. Caches
// are explicit collaborators passed into the transport via
// httpx.WithCache, never ambient global state, and every
// implementation exposes Clear for test teardown.
package pccache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is the interface shared by all response cache backends. Get
// and Set must be safe for concurrent use; Set overwrites silently.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
	Clear() error
}

// DefaultMemorySize bounds the in-memory cache when no size is given.
const DefaultMemorySize = 512

// Memory is an LRU-bounded in-memory response cache.
type Memory struct {
	entries *lru.Cache[string, []byte]
}

// NewMemory constructs a Memory cache holding at most size responses.
// A non-positive size falls back to DefaultMemorySize.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	// lru.New only fails for a non-positive size, which is guarded above.
	entries, _ := lru.New[string, []byte](size)
	return &Memory{entries: entries}
}

// Get returns a copy of the cached body for key.
func (m *Memory) Get(key string) ([]byte, bool) {
	if m == nil || m.entries == nil {
		return nil, false
	}
	body, ok := m.entries.Get(key)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), body...), true
}

// Set stores a copy of body under key, evicting the least recently
// used entry when full.
func (m *Memory) Set(key string, body []byte) {
	if m == nil || m.entries == nil {
		return
	}
	m.entries.Add(key, append([]byte(nil), body...))
}

// Clear drops every cached response.
func (m *Memory) Clear() error {
	if m == nil || m.entries == nil {
		return errors.New("pccache: memory cache not initialized")
	}
	m.entries.Purge()
	return nil
}
