package sudoku

import (
	"fmt"
	"iter"
)

// Point addresses a grid cell by column X and row Y, both in [0, 8].
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (p Point) inBounds() bool {
	return 0 <= p.X && p.X < 9 && 0 <= p.Y && p.Y < 9
}

func (p Point) index() int {
	return 9*p.Y + p.X
}

// Box returns the index of the 3x3 box containing p. Box b covers columns
// 3*(b%3)..3*(b%3)+3 and rows 3*(b/3)..3*(b/3)+3.
func (p Point) Box() int {
	return 3*(p.Y/3) + p.X/3
}

// Cell is one grid position, either empty or holding a Value. The zero Cell
// is empty.
type Cell struct {
	v Value
}

func FilledCell(v Value) Cell {
	return Cell{v}
}

func (c Cell) Filled() bool {
	return c.v != 0
}

func (c Cell) Empty() bool {
	return c.v == 0
}

// Value returns the cell's digit, if any.
func (c Cell) Value() (Value, bool) {
	return c.v, c.v != 0
}

func (c Cell) String() string {
	if c.Empty() {
		return "."
	}
	return c.v.String()
}

// Grid is the 9x9 working puzzle state, stored as a contiguous row-major
// array.
type Grid struct {
	cells [81]Cell
}

// At panics [AssertionError] when p is out of bounds.
func (g *Grid) At(p Point) Cell {
	if !p.inBounds() {
		panic(AssertionError{fmt.Sprintf("point %v outside the grid", p)})
	}
	return g.cells[p.index()]
}

// Set panics [AssertionError] when p is out of bounds.
func (g *Grid) Set(p Point, c Cell) {
	if !p.inBounds() {
		panic(AssertionError{fmt.Sprintf("point %v outside the grid", p)})
	}
	g.cells[p.index()] = c
}

func checkLine(i int) {
	if i < 0 || i >= 9 {
		panic(AssertionError{fmt.Sprintf("line index %d outside [0, 8]", i)})
	}
}

// Row yields the 9 cells of row i, left to right. The sequence is
// restartable.
func (g *Grid) Row(i int) iter.Seq[Cell] {
	checkLine(i)
	return func(yield func(Cell) bool) {
		for x := range 9 {
			if !yield(g.cells[9*i+x]) {
				return
			}
		}
	}
}

// Column yields the 9 cells of column i, top to bottom.
func (g *Grid) Column(i int) iter.Seq[Cell] {
	checkLine(i)
	return func(yield func(Cell) bool) {
		for y := range 9 {
			if !yield(g.cells[9*y+i]) {
				return
			}
		}
	}
}

// Box yields the 9 cells of box i, row-major within the 3x3 block.
func (g *Grid) Box(i int) iter.Seq[Cell] {
	checkLine(i)
	return func(yield func(Cell) bool) {
		x0, y0 := 3*(i%3), 3*(i/3)
		for dy := range 3 {
			for dx := range 3 {
				if !yield(g.cells[9*(y0+dy)+x0+dx]) {
					return
				}
			}
		}
	}
}

// Cells yields every cell once, in row-major order.
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range g.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// IndexedCells yields (point, cell) pairs covering the whole grid exactly
// once, in row-major order.
func (g *Grid) IndexedCells() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for i, c := range g.cells {
			if !yield(Point{X: i % 9, Y: i / 9}, c) {
				return
			}
		}
	}
}

// Filled reports whether no cell is empty.
func (g *Grid) Filled() bool {
	for c := range g.Cells() {
		if c.Empty() {
			return false
		}
	}
	return true
}

func unique(cells iter.Seq[Cell]) bool {
	var seen ValueSet
	for c := range cells {
		v, ok := c.Value()
		if !ok {
			continue
		}
		if seen.Has(v) {
			return false
		}
		seen.Add(v)
	}
	return true
}

// Valid reports whether every row, column and box is free of duplicate
// Values among its filled cells.
func (g *Grid) Valid() bool {
	for i := range 9 {
		if !unique(g.Row(i)) || !unique(g.Column(i)) || !unique(g.Box(i)) {
			return false
		}
	}
	return true
}

func (g *Grid) Solved() bool {
	return g.Filled() && g.Valid()
}

// Used computes the set of Values already committed along p's row, column
// and box. The set is recomputed from scratch on every call; there is no
// incremental constraint propagation here on purpose.
func (g *Grid) Used(p Point) ValueSet {
	if !p.inBounds() {
		panic(AssertionError{fmt.Sprintf("point %v outside the grid", p)})
	}
	var used ValueSet
	for c := range g.Row(p.Y) {
		if v, ok := c.Value(); ok {
			used.Add(v)
		}
	}
	for c := range g.Column(p.X) {
		if v, ok := c.Value(); ok {
			used.Add(v)
		}
	}
	for c := range g.Box(p.Box()) {
		if v, ok := c.Value(); ok {
			used.Add(v)
		}
	}
	return used
}
