package sudoku

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveConcrete(t *testing.T) {
	g := MustParseGrid([]byte(testPuzzle))
	solved, err := TrySolve(g)
	require.NoError(t, err)

	out := solved.Grid()
	assert.True(t, out.Filled())
	assert.True(t, out.Valid())

	// Every given keeps its original value.
	for i := range testPuzzle {
		if testPuzzle[i] == '.' {
			continue
		}
		p := Point{X: i % 9, Y: i / 9}
		require.Equal(t, Value(testPuzzle[i]-'0'), solved.At(p))
	}

	encoded := solved.String()
	require.Len(t, encoded, LineLength)
	for i := range encoded {
		require.True(t, '1' <= encoded[i] && encoded[i] <= '9')
	}
}

func TestSolveVectors(t *testing.T) {
	for _, line := range testPuzzles {
		solved, err := TrySolve(MustParseGrid([]byte(line)))
		require.NoError(t, err, "puzzle %q", line)
		require.True(t, solved.Grid().Solved())
	}
}

func TestSolveDeterministic(t *testing.T) {
	for _, line := range testPuzzles {
		first, err := TrySolve(MustParseGrid([]byte(line)))
		require.NoError(t, err)
		second, err := TrySolve(MustParseGrid([]byte(line)))
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	}
}

func TestSolveAlreadySolvedInput(t *testing.T) {
	g := MustParseGrid([]byte(solvedPuzzle))
	solved, err := TrySolve(g)
	require.NoError(t, err)
	assert.Equal(t, solvedPuzzle, solved.String())
}

func TestSolveExhaustsOnContradiction(t *testing.T) {
	// Two 5s in row 0: the givens already violate the row constraint.
	line := []byte(strings.Repeat(".", 81))
	line[0], line[4] = '5', '5'
	g := MustParseGrid(line)

	_, err := TrySolve(g)
	require.Error(t, err)

	var ex *Exhausted
	require.True(t, errors.As(err, &ex))
	// The diagnostic grid is fully backtracked: only the givens remain.
	assert.Equal(t, string(line), ex.Grid.String())
}

func TestSolvePanicsOnExhaustion(t *testing.T) {
	line := []byte(strings.Repeat(".", 81))
	line[0], line[4] = '5', '5'
	assert.Panics(t, func() { Solve(MustParseGrid(line)) })
}

func TestSolveMutatesOnlyOriginallyEmptyCells(t *testing.T) {
	g := MustParseGrid([]byte(testPuzzle))
	solved, err := TrySolve(g)
	require.NoError(t, err)
	// The working grid and the solved grid agree after the search.
	assert.Equal(t, solved.String(), g.String())
}

func TestTrySolveContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A solvable puzzle may finish before the first cancellation check;
	// either outcome must be coherent.
	solved, err := TrySolveContext(ctx, MustParseGrid([]byte(testPuzzle)))
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled))
	} else {
		assert.True(t, solved.Grid().Solved())
	}
}

func TestNewSolvedGridRejectsUnsolved(t *testing.T) {
	_, err := NewSolvedGrid(MustParseGrid([]byte(testPuzzle)))
	require.ErrorIs(t, err, ErrNotSolved)
}

func TestSolvedGridConversion(t *testing.T) {
	solved, err := NewSolvedGrid(MustParseGrid([]byte(solvedPuzzle)))
	require.NoError(t, err)
	assert.Equal(t, solvedPuzzle, solved.String())
	assert.Equal(t, solvedPuzzle, solved.Grid().String())
	assert.Equal(t, Value(1), solved.At(Point{X: 0, Y: 0}))
	assert.Panics(t, func() { solved.At(Point{X: 9, Y: 9}) })
}
