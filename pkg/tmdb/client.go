// Package tmdb provides a client for The Movie Database API v3.
//
// Responses are passed through as decoded JSON. The client does not model
// individual resource schemas.
package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL          = "https://api.themoviedb.org"
	defaultAPIVersion       = 3
	defaultBatchConcurrency = 4
)

//go:generate mockgen -source=client.go -destination=mocks/mock_doer.go -package=mocks Doer

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the immutable connection configuration of a Client.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion int
}

// Client is a TMDB API v3 client. It is safe for concurrent use once New returns.
type Client struct {
	cfg              Config
	httpClient       Doer
	timeout          time.Duration
	log              *slog.Logger
	bootstrap        bool
	batchConcurrency int

	sizes        ImageSizes
	bootstrapErr error
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.cfg.BaseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIVersion sets the versioned path prefix.
func WithAPIVersion(v int) Option {
	return func(c *Client) {
		c.cfg.APIVersion = v
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc Doer) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero leaves the transport default in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// WithBatchConcurrency caps the number of in-flight requests in MovieBatch.
func WithBatchConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchConcurrency = n
		}
	}
}

// WithoutBootstrap skips the /configuration fetch in New. Image sizes stay empty.
func WithoutBootstrap() Option {
	return func(c *Client) {
		c.bootstrap = false
	}
}

// New creates a TMDB client and fetches the image configuration.
//
// A failed configuration fetch does not fail construction: it is logged,
// kept for BootstrapErr, and image sizes are left empty.
func New(ctx context.Context, apiKey string, opts ...Option) *Client {
	c := &Client{
		cfg: Config{
			APIKey:     apiKey,
			BaseURL:    defaultBaseURL,
			APIVersion: defaultAPIVersion,
		},
		httpClient:       &http.Client{},
		log:              slog.Default().With("component", "tmdb"),
		bootstrap:        true,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.bootstrap {
		sizes, err := c.LoadConfiguration(ctx)
		if err != nil {
			c.log.Warn("configuration bootstrap failed, image paths will be incomplete", "error", err)
			c.bootstrapErr = err
		}
		c.sizes = sizes
	}
	return c
}

// Config returns the client's connection configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// ImageSizes returns the sizes selected during bootstrap.
func (c *Client) ImageSizes() ImageSizes {
	return c.sizes
}

// BootstrapErr returns the error from the configuration fetch in New, if any.
func (c *Client) BootstrapErr() error {
	return c.bootstrapErr
}
