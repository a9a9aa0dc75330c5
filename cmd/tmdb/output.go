package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes a decoded response. Bodies are opaque, so it is always JSON.
func printResult(w io.Writer, res *tmdb.Result) error {
	return printJSON(w, res.Value)
}

// describeError adds the TMDB status message, when the body carries one.
func describeError(err error) error {
	var apiErr *tmdb.APIError
	if !errors.As(err, &apiErr) || apiErr.RawBody == "" {
		return err
	}
	var body struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal([]byte(apiErr.RawBody), &body) != nil || body.StatusMessage == "" {
		return err
	}
	return fmt.Errorf("%w (%s)", err, body.StatusMessage)
}

func yearOf(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}
