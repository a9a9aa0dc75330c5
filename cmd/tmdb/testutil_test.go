package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// fakeTMDB serves the given routes (keyed by URL path) and counts requests.
// Unknown paths answer 404 with a TMDB-style status body.
type fakeTMDB struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeTMDB(t *testing.T, routes map[string]http.HandlerFunc) *fakeTMDB {
	t.Helper()
	f := &fakeTMDB{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	t.Cleanup(f.Close)
	return f
}

// respondJSON returns a handler writing v as JSON.
func respondJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			panic("test: failed to encode JSON: " + err.Error())
		}
	}
}

// runCLI executes the command tree in an isolated environment with no
// discoverable config file.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TMDB_CONFIG", "")
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
