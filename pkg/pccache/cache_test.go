package pccache_test

import (
	"path/filepath"
	"testing"

	"github.com/chemio/pubchem_sdk_go/pkg/pccache"
)

func TestMemoryCache(t *testing.T) {
	cache := pccache.NewMemory(2)

	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	cache.Set("a", []byte("alpha"))
	body, ok := cache.Get("a")
	if !ok || string(body) != "alpha" {
		t.Fatalf("Get after Set: got (%q, %v)", body, ok)
	}

	// The returned slice is a copy; mutating it must not poison the cache.
	body[0] = 'X'
	again, _ := cache.Get("a")
	if string(again) != "alpha" {
		t.Fatalf("cached body mutated: %q", again)
	}

	cache.Set("b", []byte("beta"))
	cache.Set("c", []byte("gamma"))
	if _, ok := cache.Get("b"); !ok {
		t.Fatalf("expected b to survive eviction")
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := cache.Get("b"); ok {
		t.Fatalf("expected empty cache after Clear")
	}
}

func TestSQLiteCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "responses.db")
	cache, err := pccache.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer cache.Close()

	if _, ok := cache.Get("url1"); ok {
		t.Fatalf("expected miss on fresh cache")
	}

	cache.Set("url1", []byte(`{"PC_Compounds":[]}`))
	body, ok := cache.Get("url1")
	if !ok || string(body) != `{"PC_Compounds":[]}` {
		t.Fatalf("Get after Set: got (%q, %v)", body, ok)
	}

	cache.Set("url1", []byte("replaced"))
	body, _ = cache.Get("url1")
	if string(body) != "replaced" {
		t.Fatalf("Set did not overwrite: %q", body)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := cache.Get("url1"); ok {
		t.Fatalf("expected empty cache after Clear")
	}
}
