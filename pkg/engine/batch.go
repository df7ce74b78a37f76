package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/resolve"
)

// Classification is one entry of a ClassifyAll batch.
type Classification struct {
	MPN    string
	Result classify.Result
	Err    error
}

// Pair is a required part and a proposed candidate.
type Pair struct {
	Required  string
	Candidate string
}

// Comparison is one entry of a CompareAll batch.
type Comparison struct {
	Pair
	Verdict resolve.Verdict
	Err     error
}

// run calls fn for every index with at most e.workers calls in flight.
// Cancelling ctx stops scheduling; calls already started complete. Entries
// never scheduled are reported by the returned count.
func (e *Engine) run(ctx context.Context, n int, fn func(i int)) int {
	var g errgroup.Group
	g.SetLimit(e.workers)

	scheduled := 0
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(i)
			return nil
		})
		scheduled++
	}
	_ = g.Wait()
	return scheduled
}

// ClassifyAll classifies mpns in parallel. The output has one entry per
// input in input order. When ctx is cancelled the remaining entries carry
// the context error.
func (e *Engine) ClassifyAll(ctx context.Context, mpns []string) ([]Classification, error) {
	out := make([]Classification, len(mpns))
	done := e.run(ctx, len(mpns), func(i int) {
		res, err := e.Classify(mpns[i])
		out[i] = Classification{MPN: mpns[i], Result: res, Err: err}
	})
	for i := done; i < len(mpns); i++ {
		out[i] = Classification{MPN: mpns[i], Err: ctx.Err()}
	}
	e.debugLog("classified batch", "size", len(mpns), "scheduled", done)
	return out, ctx.Err()
}

// CompareAll explains every pair in parallel. The output has one entry per
// input in input order. When ctx is cancelled the remaining entries carry
// the context error.
func (e *Engine) CompareAll(ctx context.Context, pairs []Pair) ([]Comparison, error) {
	out := make([]Comparison, len(pairs))
	done := e.run(ctx, len(pairs), func(i int) {
		v, err := e.Explain(pairs[i].Required, pairs[i].Candidate)
		out[i] = Comparison{Pair: pairs[i], Verdict: v, Err: err}
	})
	for i := done; i < len(pairs); i++ {
		out[i] = Comparison{Pair: pairs[i], Err: ctx.Err()}
	}
	e.debugLog("compared batch", "size", len(pairs), "scheduled", done)
	return out, ctx.Err()
}
