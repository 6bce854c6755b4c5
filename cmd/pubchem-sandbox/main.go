// pubchem-sandbox serves seeded PUG REST fixtures over HTTP so client
// code can be exercised without touching the live service. Latency and
// failure injection make it usable for resilience testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

type failConfig struct {
	rate float64
	code int
}

func main() {
	addr := flag.String("addr", ":8788", "listen address")
	seed := flag.String("seed", "", "path to JSON fixture seed (array of {path,query,view,status,body})")
	latency := flag.Duration("latency", 0, "artificial latency to inject per request")
	fail := flag.String("fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	flag.Parse()

	backend := pubchem.NewMockBackend()
	if *seed != "" {
		if err := backend.SeedFile(*seed); err != nil {
			log.Fatalf("load seed: %v", err)
		}
	}

	failCfg, err := parseFailConfig(*fail)
	if err != nil {
		log.Fatalf("parse fail flag: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/pug/", withMiddleware(*latency, failCfg, serveBackend(backend, "/rest/pug/", false)))
	mux.HandleFunc("/rest/pug_view/", withMiddleware(*latency, failCfg, serveBackend(backend, "/rest/pug_view/", true)))

	server := &http.Server{
		Addr:    *addr,
		Handler: mux,
	}

	log.Printf("pubchem-sandbox listening on %s", *addr)
	host := *addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	fmt.Println()
	fmt.Println("export PUBCHEM_RUNTIME_MODE=http")
	fmt.Printf("export PUBCHEM_API_URL=http://%s/rest/pug\n", host)
	fmt.Printf("export PUBCHEM_VIEW_URL=http://%s/rest/pug_view\n", host)
	fmt.Println()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

func serveBackend(backend *pubchem.MockBackend, prefix string, view bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, prefix)
		log.Printf("serve %s%s", prefix, path)

		var (
			resp *pubchem.RawResponse
			err  error
		)
		if view {
			resp, err = backend.FetchView(r.Context(), path, r.URL.Query())
		} else {
			resp, err = backend.Fetch(r.Context(), path, r.URL.Query())
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	}
}

func withMiddleware(delay time.Duration, failCfg failConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		if failCfg.rate > 0 && rand.Float64() < failCfg.rate {
			http.Error(w, "injected failure", failCfg.code)
			return
		}
		next(w, r)
	}
}

func parseFailConfig(raw string) (failConfig, error) {
	cfg := failConfig{code: http.StatusServiceUnavailable}
	if raw == "" {
		return cfg, nil
	}
	for _, part := range strings.Split(raw, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return cfg, fmt.Errorf("invalid fail segment %q", part)
		}
		switch kv[0] {
		case "rate":
			rate, err := strconv.ParseFloat(kv[1], 64)
			if err != nil || rate < 0 || rate > 1 {
				return cfg, fmt.Errorf("invalid fail rate %q", kv[1])
			}
			cfg.rate = rate
		case "code":
			code, err := strconv.Atoi(kv[1])
			if err != nil || code < 400 || code > 599 {
				return cfg, fmt.Errorf("invalid fail code %q", kv[1])
			}
			cfg.code = code
		default:
			return cfg, fmt.Errorf("unknown fail key %q", kv[0])
		}
	}
	return cfg, nil
}
