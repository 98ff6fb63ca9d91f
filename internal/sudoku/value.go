package sudoku

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Value is a single sudoku digit in [1, 9]. The zero Value is reserved for
// empty cells and never escapes this package.
type Value uint8

// NewValue validates v. Construction fails outside [1, 9], it never clamps.
func NewValue(v uint8) (Value, error) {
	if v < 1 || v > 9 {
		return 0, fmt.Errorf("value %d outside [1, 9]", v)
	}
	return Value(v), nil
}

func (v Value) String() string {
	return strconv.Itoa(int(v))
}

// ValueSet is a 9-bit mask of Values. The zero ValueSet is empty.
type ValueSet uint16

func (s *ValueSet) Add(v Value) {
	*s |= 1 << (v - 1)
}

func (s ValueSet) Has(v Value) bool {
	return s&(1<<(v-1)) != 0
}

func (s ValueSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// valueCursor hands out candidate Values in ascending order, remembering the
// last one handed out so a position is never offered the same Value twice
// within one trail lifetime.
type valueCursor struct {
	last Value
}

// next returns the smallest untried Value not present in used.
func (c *valueCursor) next(used ValueSet) (Value, bool) {
	for v := c.last + 1; v <= 9; v++ {
		if !used.Has(v) {
			c.last = v
			return v, true
		}
	}
	return 0, false
}
