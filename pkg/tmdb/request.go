package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Result is the decoded body of a successful response.
// Value holds map[string]any or []any depending on the endpoint.
type Result struct {
	Body  []byte
	Value any
}

// Map returns Value as an object, or nil if the body was not a JSON object.
func (r *Result) Map() map[string]any {
	if r == nil {
		return nil
	}
	m, _ := r.Value.(map[string]any)
	return m
}

// Decode unmarshals the raw body into v.
func (r *Result) Decode(v any) error {
	if r == nil {
		return errors.New("tmdb: nil result")
	}
	return json.Unmarshal(r.Body, v)
}

// BuildURL returns the full request URL for an API path, with the API key attached.
// Doubled separators in the path are collapsed.
func (c *Client) BuildURL(path string) string {
	p := collapseSlashes("/" + strconv.Itoa(c.cfg.APIVersion) + "/" + path)
	return c.cfg.BaseURL + p + "?api_key=" + url.QueryEscape(c.cfg.APIKey)
}

// SendRequest performs one request against the API and decodes the JSON body.
// GET params go to the query string; POST params are sent form-encoded.
// An empty method means GET.
func (c *Client) SendRequest(ctx context.Context, path string, params url.Values, method string) (*Result, error) {
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return nil, &ValidationError{Field: "method", Message: fmt.Sprintf("unsupported method %q", method)}
	}

	target := c.BuildURL(path)
	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(params.Encode())
	} else if len(params) > 0 {
		target += "&" + params.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	info := ResponseInfo{Method: method, URL: c.redact(target)}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		info.Duration = time.Since(start)
		err = c.redactError(err)
		msg := c.redact(err.Error())
		if urlErr, ok := err.(*url.Error); ok {
			// The URL is already in Info.
			msg = urlErr.Err.Error()
		}
		c.log.Debug("request failed", "method", method, "path", path, "error", msg)
		return nil, &APIError{Info: info, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	info.StatusCode = resp.StatusCode
	info.Status = resp.Status
	info.ContentType = resp.Header.Get("Content-Type")
	info.Header = resp.Header
	info.Duration = time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", info.Duration.Milliseconds())
		return nil, &APIError{
			Info:    info,
			RawBody: string(raw),
			Code:    resp.StatusCode,
			Message: "The requested URL returned error: " + resp.Status,
		}
	}
	if readErr != nil {
		return nil, &APIError{Info: info, RawBody: string(raw), Message: readErr.Error(), Err: readErr}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &DecodeError{RawBody: string(raw), Err: err}
	}

	c.log.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", info.Duration.Milliseconds())
	return &Result{Body: raw, Value: value}, nil
}

// redact hides the API key in URLs that end up in logs and errors.
func (c *Client) redact(u string) string {
	if c.cfg.APIKey == "" {
		return u
	}
	return strings.Replace(u, "api_key="+url.QueryEscape(c.cfg.APIKey), "api_key=REDACTED", 1)
}

// redactError returns a copy of a transport error with the key removed from its URL.
func (c *Client) redactError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	clean := *urlErr
	clean.URL = c.redact(urlErr.URL)
	return &clean
}

func collapseSlashes(s string) string {
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return s
}
