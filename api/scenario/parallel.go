/* parallel.go
 * Contains the concurrent variant of Enumerate. Every worker scores a disjoint slice of the path space against
 * its own copy of the hypothesis, so the caller's tree is never mutated.
 */

package scenario

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bracket-bot/api/bracket"
)

// EnumerateParallel returns the same scores as Enumerate using up to workers goroutines. workers <= 0 uses
// GOMAXPROCS. Cancelling ctx stops every worker before its next scenario and returns ctx's error.
func (e *Engine) EnumerateParallel(ctx context.Context, hypothesis *bracket.MatchupTree, prediction *bracket.MatchupTree, depth int, workers int) (map[string]float64, error) {
	return e.EnumerateParallelFixed(ctx, hypothesis, prediction, depth, nil, workers)
}

// EnumerateParallelFixed is EnumerateParallel over the scenarios that keep every game flagged in fixed as it is
// in the hypothesis
func (e *Engine) EnumerateParallelFixed(ctx context.Context, hypothesis *bracket.MatchupTree, prediction *bracket.MatchupTree, depth int, fixed []bool, workers int) (map[string]float64, error) {
	if _, err := e.games(hypothesis, depth); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	all := freePaths(depth, fixed)
	workers = min(workers, len(all))
	scores := make([]float64, len(all))
	chunk := (len(all) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(all); start += chunk {
		end := min(start+chunk, len(all))
		g.Go(func() error {
			local := hypothesis.Clone()
			games, err := local.EveryTree(depth)
			if err != nil {
				return err
			}
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				apply(games, all[i])
				s, err := prediction.Score(local)
				apply(games, all[i])
				if err != nil {
					return err
				}
				scores[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(all))
	for i, path := range all {
		out[path] = scores[i]
	}
	return out, nil
}
