package registry

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the parallel registry lookups when the
// configuration does not say otherwise.
const DefaultConcurrency = 8

// Request names a crate and the installed version its dates are resolved
// against.
type Request struct {
	Crate     string
	Installed string
}

// Outcome is the result of one lookup. Exactly one of Metadata and Err is
// set.
type Outcome struct {
	Metadata *CrateMetadata
	Err      error
}

// FetchAll looks up every requested crate concurrently, bounded by
// concurrency. The returned slice is parallel to reqs; lookup failures stay
// in their slot instead of aborting the batch. The progress callback, when
// non-nil, is invoked once per completed lookup and must be safe for
// concurrent use.
func (c *Client) FetchAll(ctx context.Context, reqs []Request, concurrency int, progress func()) []Outcome {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]Outcome, len(reqs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			meta, err := c.Lookup(ctx, req.Crate, req.Installed)
			outcomes[i] = Outcome{Metadata: meta, Err: err}
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	// Lookup failures are carried per slot, so the group itself never errors.
	_ = g.Wait()

	return outcomes
}
