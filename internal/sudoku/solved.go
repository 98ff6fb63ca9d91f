package sudoku

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSolved is returned by NewSolvedGrid for incomplete or invalid grids.
var ErrNotSolved = errors.New("grid is not solved")

// SolvedGrid is a complete, constraint-satisfying grid. It is obtainable
// only through NewSolvedGrid and is never mutated afterwards, so holding one
// is proof the puzzle was solved.
type SolvedGrid struct {
	values [81]Value
}

// NewSolvedGrid validates that g is completely and correctly filled and
// converts it. The only constructor.
func NewSolvedGrid(g *Grid) (*SolvedGrid, error) {
	if !g.Solved() {
		return nil, ErrNotSolved
	}
	var s SolvedGrid
	for i, c := range g.cells {
		v, ok := c.Value()
		if !ok {
			panic(AssertionError{"a solved grid has no empty cells"})
		}
		s.values[i] = v
	}
	return &s, nil
}

// At panics [AssertionError] when p is out of bounds.
func (s *SolvedGrid) At(p Point) Value {
	if !p.inBounds() {
		panic(AssertionError{fmt.Sprintf("point %v outside the grid", p)})
	}
	return s.values[p.index()]
}

// Grid converts back into a mutable working grid.
func (s *SolvedGrid) Grid() *Grid {
	var g Grid
	for i, v := range s.values {
		g.cells[i] = FilledCell(v)
	}
	return &g
}

// String renders the 81-digit line form.
func (s *SolvedGrid) String() string {
	var b strings.Builder
	b.Grow(LineLength)
	for _, v := range s.values {
		b.WriteString(v.String())
	}
	return b.String()
}

// Pretty renders the box-drawn form.
func (s *SolvedGrid) Pretty() string {
	return s.Grid().Pretty()
}
