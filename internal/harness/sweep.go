package harness

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/lanesim/go-lanes/lanes"
	"github.com/lanesim/go-lanes/lanes/contrib/workerpool"
)

// Sweep runs every kernel once per width, each width on its own Unit, and
// spreads the widths over pool. Results are ordered by the position of
// their width in widths, then by kernel, whatever order the workers finish
// in. Invalid widths are reported in the returned error and skipped.
func (r *Runner) Sweep(ctx context.Context, pool *workerpool.Pool, widths []int, in Inputs, opts ...lanes.Option) ([]Result, error) {
	type outcome struct {
		results []Result
		err     error
	}

	outcomes := workerpool.Map(pool, len(widths), func(i int) outcome {
		u, err := lanes.New(widths[i], opts...)
		if err != nil {
			return outcome{err: err}
		}
		res, err := r.Run(ctx, u, in)
		return outcome{results: res, err: err}
	})

	results := lo.FlatMap(outcomes, func(o outcome, _ int) []Result { return o.results })
	errs := lo.Map(outcomes, func(o outcome, _ int) error { return o.err })
	return results, errors.Join(errs...)
}

// Failed returns the results whose kernel disagreed with its reference.
func Failed(results []Result) []Result {
	return lo.Reject(results, func(r Result, _ int) bool { return r.Passed() })
}

// Total merges the statistics of all results.
func Total(results []Result) lanes.Stats {
	return lo.Reduce(results, func(acc lanes.Stats, r Result, _ int) lanes.Stats {
		return acc.Merge(r.Stats)
	}, lanes.Stats{PerOp: map[string]int{}})
}
