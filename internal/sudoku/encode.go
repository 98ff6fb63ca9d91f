package sudoku

import (
	"fmt"
	"strings"
)

// LineLength is the length of an encoded puzzle line: one byte per cell,
// row-major.
const LineLength = 81

// ParseGrid decodes an 81-byte line over {'.', '1'..'9'} into a Grid. A '.'
// is an empty cell, a digit is a given. Malformed lines are reported as
// recoverable errors so one bad puzzle does not take down a whole batch.
func ParseGrid(line []byte) (*Grid, error) {
	if len(line) != LineLength {
		return nil, fmt.Errorf("puzzle line must be %d bytes, got %d", LineLength, len(line))
	}
	var g Grid
	for i, b := range line {
		switch {
		case b == '.':
		case '1' <= b && b <= '9':
			g.cells[i] = FilledCell(Value(b - '0'))
		default:
			return nil, fmt.Errorf("bad byte %q at offset %d, expected '.' or '1'-'9'", b, i)
		}
	}
	return &g, nil
}

// MustParseGrid is ParseGrid for callers that consider a malformed line a
// bug rather than input.
func MustParseGrid(line []byte) *Grid {
	g, err := ParseGrid(line)
	if err != nil {
		panic(AssertionError{err.Error()})
	}
	return g
}

// String renders the grid back into the 81-character line form. For any
// grid built by ParseGrid this reproduces the input byte for byte.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(LineLength)
	for _, c := range g.cells {
		b.WriteString(c.String())
	}
	return b.String()
}

// Pretty renders the grid with box-drawing separators, empty cells as
// blanks. This form is for humans and does not round-trip.
func (g *Grid) Pretty() string {
	var b strings.Builder
	for y := range 9 {
		if y%3 == 0 {
			b.WriteString("+-------+-------+-------+\n")
		}
		for x := range 9 {
			if x%3 == 0 {
				b.WriteString("| ")
			}
			c := g.cells[9*y+x]
			if c.Empty() {
				b.WriteString("  ")
			} else {
				b.WriteString(c.String() + " ")
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString("+-------+-------+-------+")
	return b.String()
}
