package pubchem

import (
	"fmt"
	"os"
	"strings"

	"github.com/chemio/pubchem_sdk_go/pkg/pccache"
)

const (
	envMode      = "PUBCHEM_RUNTIME_MODE"
	envBaseURL   = "PUBCHEM_API_URL"
	envViewURL   = "PUBCHEM_VIEW_URL"
	envCache     = "PUBCHEM_CACHE"
	envCachePath = "PUBCHEM_CACHE_PATH"
	envMockSeed  = "PUBCHEM_MOCK_SEED"

	modeAuto = "auto"
	modeHTTP = "http"
	modeMock = "mock"
)

// NewFromEnv initialises a Client based on PUBCHEM_* environment
// variables and returns the resolved mode ("http" or "mock").
//
// PUBCHEM_RUNTIME_MODE selects http, mock, or auto (the default; auto
// picks mock only when PUBCHEM_MOCK_SEED is set). PUBCHEM_API_URL and
// PUBCHEM_VIEW_URL override the production endpoints. PUBCHEM_CACHE
// selects off, memory, or sqlite; sqlite requires PUBCHEM_CACHE_PATH.
func NewFromEnv(opts ...Option) (client *Client, mode string, err error) {
	mode = strings.ToLower(strings.TrimSpace(os.Getenv(envMode)))
	seedPath := strings.TrimSpace(os.Getenv(envMockSeed))

	switch mode {
	case "", modeAuto:
		if seedPath != "" {
			return newMockFromEnv(seedPath, opts)
		}
		return newHTTPFromEnv(opts)
	case modeHTTP:
		return newHTTPFromEnv(opts)
	case modeMock:
		return newMockFromEnv(seedPath, opts)
	default:
		return nil, "", fmt.Errorf("pubchem: unsupported %s value %q", envMode, mode)
	}
}

func newHTTPFromEnv(opts []Option) (*Client, string, error) {
	if base := strings.TrimSpace(os.Getenv(envBaseURL)); base != "" {
		opts = append(opts, WithBaseURL(base))
	}
	if view := strings.TrimSpace(os.Getenv(envViewURL)); view != "" {
		opts = append(opts, WithViewURL(view))
	}

	switch cache := strings.ToLower(strings.TrimSpace(os.Getenv(envCache))); cache {
	case "", "off":
	case "memory":
		opts = append(opts, WithCache(pccache.NewMemory(pccache.DefaultMemorySize)))
	case "sqlite":
		path := strings.TrimSpace(os.Getenv(envCachePath))
		if path == "" {
			return nil, "", fmt.Errorf("pubchem: sqlite cache requires %s", envCachePath)
		}
		store, err := pccache.OpenSQLite(path)
		if err != nil {
			return nil, "", fmt.Errorf("pubchem: open cache: %w", err)
		}
		opts = append(opts, WithCache(store))
	default:
		return nil, "", fmt.Errorf("pubchem: unsupported %s value %q", envCache, cache)
	}

	client, err := New(opts...)
	if err != nil {
		return nil, "", err
	}
	return client, modeHTTP, nil
}

func newMockFromEnv(seedPath string, opts []Option) (*Client, string, error) {
	backend := NewMockBackend()
	if seedPath != "" {
		if err := backend.SeedFile(seedPath); err != nil {
			return nil, "", err
		}
	}
	return NewWithBackend(backend, opts...), modeMock, nil
}
