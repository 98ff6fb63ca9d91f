package sudoku

import "fmt"

// AssertionError reports a broken caller contract, such as indexing outside
// the grid. It is only ever used as a panic payload.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// Exhausted means no assignment of the empty cells satisfies the
// row/column/box uniqueness constraints. Grid holds the fully backtracked
// working state for diagnostics.
type Exhausted struct {
	Grid *Grid
}

// [Exhausted] implements [error]
func (e *Exhausted) Error() string {
	return fmt.Sprintf("exhausted all candidates for puzzle %q", e.Grid)
}
