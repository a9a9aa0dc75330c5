package tmdb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// CorePart is the Batch key holding the bare movie.
const CorePart = "core"

// Part is the outcome of one request in a batch. Exactly one field is set.
type Part struct {
	Result *Result
	Err    error
}

// Batch maps "core" and each requested part name to its outcome.
type Batch map[string]Part

// Failed returns the sorted keys whose request failed.
func (b Batch) Failed() []string {
	var keys []string
	for k, p := range b {
		if p.Err != nil {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Err joins the errors of every failed part, or returns nil.
func (b Batch) Err() error {
	var errs []error
	for _, k := range b.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", k, b[k].Err))
	}
	return errors.Join(errs...)
}

// MovieBatch fetches a movie and each of the given parts.
//
// Requests run concurrently and independently: a failed part is recorded in
// the batch and never stops the others.
func (c *Client) MovieBatch(ctx context.Context, id int64, parts []string) Batch {
	start := time.Now()

	keys := []string{CorePart}
	for _, p := range parts {
		if p == "" || slices.Contains(keys, p) {
			continue
		}
		keys = append(keys, p)
	}

	var (
		mu    sync.Mutex
		batch = make(Batch, len(keys))
	)

	var g errgroup.Group
	g.SetLimit(c.batchConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			part := key
			if part == CorePart {
				part = ""
			}
			res, err := c.Movie(ctx, id, part)

			mu.Lock()
			batch[key] = Part{Result: res, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	c.log.Debug("movie batch completed", "id", id, "parts", len(keys), "failed", len(batch.Failed()), "duration_ms", time.Since(start).Milliseconds())
	return batch
}
