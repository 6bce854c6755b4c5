package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
)

// MockFixture is one canned response served by a MockBackend. Path is
// the request path relative to the service root (no leading slash);
// Query, when set, must match the encoded query string exactly,
// otherwise the fixture matches any query on that path.
type MockFixture struct {
	Path   string          `json:"path"`
	Query  string          `json:"query,omitempty"`
	View   bool            `json:"view,omitempty"`
	Status int             `json:"status,omitempty"`
	Body   json.RawMessage `json:"body"`
}

// MockBackend serves canned responses for offline development and
// tests. Requests with no matching fixture receive a NotFound fault,
// the same shape the live service produces.
type MockBackend struct {
	mu       sync.RWMutex
	fixtures map[string]MockFixture
}

// NewMockBackend returns an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{fixtures: make(map[string]MockFixture)}
}

// Seed registers fixtures, replacing earlier entries for the same
// path and query.
func (b *MockBackend) Seed(fixtures ...MockFixture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range fixtures {
		b.fixtures[fixtureKey(f.View, f.Path, f.Query)] = f
	}
}

// SeedFile loads fixtures from a JSON file holding an array of
// MockFixture objects.
func (b *MockBackend) SeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("pubchem: read mock seed: %w", err)
	}
	var fixtures []MockFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("pubchem: parse mock seed %s: %w", path, err)
	}
	b.Seed(fixtures...)
	return nil
}

func (b *MockBackend) Fetch(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return b.serve(ctx, false, path, query)
}

func (b *MockBackend) FetchView(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return b.serve(ctx, true, path, query)
}

func (b *MockBackend) serve(ctx context.Context, view bool, path string, query url.Values) (*RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}
	b.mu.RLock()
	fixture, ok := b.fixtures[fixtureKey(view, path, query.Encode())]
	if !ok {
		// Fall back to a query-agnostic fixture.
		fixture, ok = b.fixtures[fixtureKey(view, path, "")]
	}
	b.mu.RUnlock()
	if !ok {
		return &RawResponse{
			StatusCode: http.StatusNotFound,
			Body: []byte(`{"Fault":{"Code":"PUGREST.NotFound","Message":"No fixture matches the request",` +
				`"Details":["` + path + `"]}}`),
			ContentType: "application/json",
		}, nil
	}
	status := fixture.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &RawResponse{
		StatusCode:  status,
		Body:        append([]byte(nil), fixture.Body...),
		ContentType: "application/json",
	}, nil
}

func fixtureKey(view bool, path, query string) string {
	key := path
	if view {
		key = "view:" + key
	}
	if query != "" {
		key += "?" + query
	}
	return key
}
