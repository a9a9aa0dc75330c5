package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/tmdbv3/pkg/tmdb/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeJSON is a test helper that writes JSON response and panics on error.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

var defaultImages = map[string]any{
	"base_url":       "http://image.tmdb.org/t/p/",
	"poster_sizes":   []string{"w92", "w154", "w185", "w342", "w500", "original"},
	"backdrop_sizes": []string{"w300", "w780", "w1280", "original"},
	"profile_sizes":  []string{"w45", "w185", "h632", "original"},
}

func configurationHandler(images map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"images": images})
	}
}

// mockTMDB creates a test server that simulates the TMDB API.
// /3/configuration is served with defaultImages unless overridden.
func mockTMDB(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		if r.URL.Path == "/3/configuration" {
			configurationHandler(defaultImages)(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(server.URL), WithLogger(testLogger())}, opts...)
	return New(context.Background(), "test-key", opts...)
}

func TestNew_Defaults(t *testing.T) {
	client := New(context.Background(), "test-key", WithoutBootstrap())

	cfg := client.Config()
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 3, cfg.APIVersion)
	assert.Equal(t, ImageSizes{}, client.ImageSizes())
	assert.NoError(t, client.BootstrapErr())

	hc, ok := client.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Zero(t, hc.Timeout, "default transport must not enforce a timeout")
}

func TestNew_WithOptions(t *testing.T) {
	customHTTP := &http.Client{Timeout: 5 * time.Second}

	client := New(context.Background(), "key",
		WithoutBootstrap(),
		WithBaseURL("https://custom.url/"),
		WithAPIVersion(4),
		WithHTTPClient(customHTTP),
		WithTimeout(time.Second),
		WithBatchConcurrency(2),
	)

	assert.Equal(t, "https://custom.url", client.Config().BaseURL)
	assert.Equal(t, 4, client.Config().APIVersion)
	assert.Same(t, customHTTP, client.httpClient)
	assert.Equal(t, time.Second, client.timeout)
	assert.Equal(t, 2, client.batchConcurrency)
}

func TestNew_Bootstrap(t *testing.T) {
	var calls int
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/configuration": func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			configurationHandler(defaultImages)(w, r)
		},
	})

	client := newTestClient(t, server)

	require.NoError(t, client.BootstrapErr())
	assert.Equal(t, 1, calls)
	assert.Equal(t, ImageSizes{
		Poster:   "w185",
		Backdrop: "w1280",
		Profile:  "w185",
		BasePath: "http://image.tmdb.org/t/p/",
	}, client.ImageSizes())
}

func TestNew_BootstrapFailureDegrades(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/configuration": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
		},
		"/3/movie/550": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"id": 550})
		},
	})

	client := newTestClient(t, server)

	require.Error(t, client.BootstrapErr())
	assert.ErrorIs(t, client.BootstrapErr(), ErrUnauthorized)
	assert.Equal(t, ImageSizes{}, client.ImageSizes())
	assert.Equal(t, "", client.ImagePath("", Poster))

	// Later calls still work.
	res, err := client.Movie(context.Background(), 550, "")
	require.NoError(t, err)
	assert.Equal(t, float64(550), res.Map()["id"])
}

func TestNew_BootstrapConnectionFailure(t *testing.T) {
	client := New(context.Background(), "key", WithBaseURL("http://127.0.0.1:1"), WithLogger(testLogger()))

	var apiErr *APIError
	require.ErrorAs(t, client.BootstrapErr(), &apiErr)
	assert.Equal(t, 0, apiErr.Code)
	assert.Equal(t, ImageSizes{}, client.ImageSizes())
}

func TestBuildURL(t *testing.T) {
	client := New(context.Background(), "X", WithoutBootstrap())

	tests := []struct {
		path string
		want string
	}{
		{"/movie/550", "https://api.themoviedb.org/3/movie/550?api_key=X"},
		{"//movie//550", "https://api.themoviedb.org/3/movie/550?api_key=X"},
		{"movie/550", "https://api.themoviedb.org/3/movie/550?api_key=X"},
		{"/search/movie", "https://api.themoviedb.org/3/search/movie?api_key=X"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := client.BuildURL(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, strings.Count(got, "api_key=X"))

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.NotContains(t, u.Path, "//")
		})
	}
}

func TestBuildURL_EscapesKey(t *testing.T) {
	client := New(context.Background(), "a b&c", WithoutBootstrap())

	u, err := url.Parse(client.BuildURL("/movie/1"))
	require.NoError(t, err)
	assert.Equal(t, "a b&c", u.Query().Get("api_key"))
}

func TestSendRequest_GETParams(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/search/movie": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "fight club & more", r.URL.Query().Get("query"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			writeJSON(w, map[string]any{"page": 2, "results": []any{}})
		},
	})
	client := newTestClient(t, server, WithoutBootstrap())

	params := url.Values{"query": {"fight club & more"}, "page": {"2"}}
	res, err := client.SendRequest(context.Background(), "/search/movie", params, "")
	require.NoError(t, err)
	assert.Equal(t, float64(2), res.Map()["page"])
}

func TestSendRequest_POSTForm(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/550/rating": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Empty(t, r.URL.Query().Get("value"), "POST params must not be in the URL")
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "8", r.PostForm.Get("value"))
			writeJSON(w, map[string]any{"status_code": 1, "status_message": "Success"})
		},
	})
	client := newTestClient(t, server, WithoutBootstrap())

	res, err := client.SendRequest(context.Background(), "/movie/550/rating", url.Values{"value": {"8"}}, "post")
	require.NoError(t, err)
	assert.Equal(t, "Success", res.Map()["status_message"])
}

func TestSendRequest_UnsupportedMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockDoer(ctrl)

	client := New(context.Background(), "key", WithoutBootstrap(), WithHTTPClient(doer))

	res, err := client.SendRequest(context.Background(), "/movie/1", nil, http.MethodDelete)
	assert.Nil(t, res)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "method", vErr.Field)
}

func TestSendRequest_HTTPError(t *testing.T) {
	server := mockTMDB(t, nil)
	client := newTestClient(t, server, WithoutBootstrap())

	res, err := client.SendRequest(context.Background(), "/movie/99999999", nil, "")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.Info.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Info.Method)
	assert.Contains(t, apiErr.RawBody, "could not be found")
	assert.NotEmpty(t, apiErr.Message)
	assert.Contains(t, apiErr.Info.URL, "api_key=REDACTED")
	assert.NotContains(t, apiErr.Error(), "test-key")
}

func TestSendRequest_RateLimited(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/popular": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "10")
			w.WriteHeader(http.StatusTooManyRequests)
		},
	})
	client := newTestClient(t, server, WithoutBootstrap())

	_, err := client.PopularMovies(context.Background())
	assert.ErrorIs(t, err, ErrRateLimited)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "10", apiErr.Info.Header.Get("Retry-After"))
	assert.Empty(t, apiErr.RawBody)
}

func TestSendRequest_ConnectionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockDoer(ctrl)
	netErr := errors.New("connection refused")

	doer.EXPECT().Do(gomock.Any()).Return(nil, netErr)

	client := New(context.Background(), "key", WithoutBootstrap(), WithHTTPClient(doer), WithLogger(testLogger()))

	res, err := client.LatestMovie(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, netErr)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Code)
	assert.Equal(t, "connection refused", apiErr.Message)
	assert.Empty(t, apiErr.RawBody)
}

func TestSendRequest_TransportErrorHidesKey(t *testing.T) {
	client := New(context.Background(), "SECRETKEY",
		WithoutBootstrap(),
		WithBaseURL("http://127.0.0.1:1"),
		WithLogger(testLogger()),
	)

	_, err := client.Movie(context.Background(), 1, "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRETKEY")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Code)
	assert.NotContains(t, apiErr.Message, "127.0.0.1:1/3/movie", "URL appears once, in Info")
	assert.Equal(t, 1, strings.Count(err.Error(), "/3/movie/1"))

	inner := errors.Unwrap(err)
	require.Error(t, inner)
	assert.NotContains(t, inner.Error(), "SECRETKEY")
	assert.Contains(t, inner.Error(), "api_key=REDACTED")

	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.NotContains(t, urlErr.URL, "SECRETKEY")
}

func TestSendRequest_Timeout(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/latest": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
	})
	client := newTestClient(t, server, WithoutBootstrap(), WithTimeout(20*time.Millisecond))

	_, err := client.SendRequest(context.Background(), "/movie/latest", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Code)
}

func TestSendRequest_DecodeError(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/top-rated": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		},
	})
	client := newTestClient(t, server, WithoutBootstrap())

	res, err := client.TopRatedMovies(context.Background())
	assert.Nil(t, res)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "<html>not json</html>", decErr.RawBody)
}

func TestResult_Decode(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/550": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"id": 550, "title": "Fight Club"})
		},
		"/3/movie/550/keywords": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []any{"one", "two"})
		},
	})
	client := newTestClient(t, server, WithoutBootstrap())

	res, err := client.Movie(context.Background(), 550, "")
	require.NoError(t, err)

	var movie struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, res.Decode(&movie))
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)

	list, err := client.Movie(context.Background(), 550, "keywords")
	require.NoError(t, err)
	assert.Nil(t, list.Map(), "array bodies are not objects")
	assert.Equal(t, []any{"one", "two"}, list.Value)
}
