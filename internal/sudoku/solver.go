package sudoku

import (
	"context"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// checkEvery is the number of search steps between cooperative context
// checks. The trail never exceeds 81 entries, so checking only in the outer
// loop is enough.
const checkEvery = 4096

// trailEntry records one tentative assignment together with the candidates
// already tried at that position, so revisiting it never repeats a Value.
type trailEntry struct {
	pos    Point
	cursor valueCursor
}

// Solve completes g in place and panics on exhaustion. Callers that need
// the dead-end grid for diagnostics must use TrySolve.
func Solve(g *Grid) *SolvedGrid {
	s, err := TrySolve(g)
	if err != nil {
		panic(err)
	}
	return s
}

// TrySolve runs an iterative depth-first search over the originally-empty
// positions of g, mutating it in place. On success the terminal grid is
// returned as a SolvedGrid; on exhaustion the returned error is an
// [*Exhausted] carrying the fully backtracked grid.
func TrySolve(g *Grid) (*SolvedGrid, error) {
	return TrySolveContext(context.Background(), g)
}

// TrySolveContext is TrySolve with a cooperative cancellation check inside
// the search loop, for callers that need to bound pathological inputs. The
// search itself is a single-threaded CPU-bound loop with no other
// suspension points.
func TrySolveContext(ctx context.Context, g *Grid) (*SolvedGrid, error) {
	// Positions still to be filled; the most recently scanned one is tried
	// first.
	var frontier []Point
	for p, c := range g.IndexedCells() {
		if c.Empty() {
			frontier = append(frontier, p)
		}
	}
	trail := make([]trailEntry, 0, len(frontier))

	steps := 0
main:
	for {
		steps++
		if steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if len(frontier) == 0 {
			// Positions only leave the frontier once filled, so the grid is
			// complete. It can still be invalid when the givens themselves
			// clash; no assignment of the empty cells can ever fix that, so
			// undo everything and report exhaustion.
			solved, err := NewSolvedGrid(g)
			if err != nil {
				for _, e := range trail {
					g.Set(e.pos, Cell{})
				}
				return nil, &Exhausted{Grid: g}
			}
			log.Debugf("solved in %d steps", steps)
			return solved, nil
		}

		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		var cur valueCursor
		if v, ok := cur.next(g.Used(p)); ok {
			g.Set(p, FilledCell(v))
			trail = append(trail, trailEntry{p, cur})
			continue main
		}
		// Nothing fits here right now; this position must be resolved by
		// backtracking.
		frontier = append(frontier, p)

		for len(trail) > 0 {
			e := trail[len(trail)-1]
			trail = trail[:len(trail)-1]
			// Undo the tentative assignment before recomputing constraints.
			g.Set(e.pos, Cell{})
			if v, ok := e.cursor.next(g.Used(e.pos)); ok {
				g.Set(e.pos, FilledCell(v))
				trail = append(trail, e)
				continue main
			}
			// Exhausted here too; retry this position fresh later.
			frontier = append(frontier, e.pos)
		}
		// The trail drained without finding a resumable position: the whole
		// search space has been explored.
		log.Debugf("exhausted after %d steps", steps)
		return nil, &Exhausted{Grid: g}
	}
}
