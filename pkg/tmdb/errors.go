package tmdb

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for TMDB API responses. An *APIError matches these with
// errors.Is based on its HTTP status.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized: invalid api key")
	ErrRateLimited  = errors.New("rate limited: too many requests")

	// ErrInvalidRating is matched by the *ValidationError returned from AddRating.
	ErrInvalidRating = errors.New("invalid rating")
)

// RatingMessage is the message carried by a rating ValidationError.
const RatingMessage = "Rating must be a float value between 1 and 10"

// ResponseInfo is whatever transport metadata was available when a request failed.
type ResponseInfo struct {
	Method      string
	URL         string // api_key redacted
	StatusCode  int
	Status      string
	ContentType string
	Header      http.Header
	Duration    time.Duration
}

// APIError reports a transport failure: a connection error, a timeout, or a non-2xx status.
// Code is the HTTP status code, or 0 when no response was received.
type APIError struct {
	Info    ResponseInfo
	RawBody string
	Code    int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("tmdb: %s %s: %d: %s", e.Info.Method, e.Info.URL, e.Code, e.Message)
	}
	return fmt.Sprintf("tmdb: %s %s: %s", e.Info.Method, e.Info.URL, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps well-known status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrRateLimited:
		return e.Code == http.StatusTooManyRequests
	}
	return false
}

// ValidationError reports a caller-supplied value that failed a precondition.
// No request is made when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRating && e.Field == "rating"
}

// DecodeError is returned when a successful response body is not valid JSON.
type DecodeError struct {
	RawBody string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tmdb: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
