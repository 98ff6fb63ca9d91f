// Package batch solves many independent puzzles with a bounded amount of
// parallelism. Every solve owns its own grid and trail, so puzzles never
// share state.
package batch

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vturenko/sudoku-server/internal/sudoku"
)

var log = logrus.New()

// Result is the outcome of one puzzle in a batch. Err holds parse failures
// and search exhaustion; Solution is nil in either case.
type Result struct {
	Index     int
	Input     string
	Solution  *sudoku.SolvedGrid
	Err       error
	ParseTime time.Duration
	SolveTime time.Duration
}

func (r Result) Solved() bool {
	return r.Solution != nil
}

// SolveAll solves every line with at most workers concurrent searches and
// returns results in input order. Malformed lines and exhausted searches
// land in the per-line Err; only context cancellation fails the whole
// batch.
func SolveAll(ctx context.Context, lines []string, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(lines))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		g.Go(func() error {
			results[i] = solveOne(gCtx, i, line)
			return gCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	solved := 0
	for _, r := range results {
		if r.Solved() {
			solved++
		}
	}
	log.Debugf("solved %d of %d puzzles", solved, len(lines))
	return results, nil
}

func solveOne(ctx context.Context, i int, line string) Result {
	r := Result{Index: i, Input: line}

	start := time.Now()
	grid, err := sudoku.ParseGrid([]byte(line))
	r.ParseTime = time.Since(start)
	if err != nil {
		r.Err = err
		return r
	}

	start = time.Now()
	solved, err := sudoku.TrySolveContext(ctx, grid)
	r.SolveTime = time.Since(start)
	if err != nil {
		r.Err = err
		return r
	}
	r.Solution = solved
	return r
}
