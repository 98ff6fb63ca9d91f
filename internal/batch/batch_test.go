package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vturenko/sudoku-server/internal/sudoku"
)

const testPuzzle = ".......1.4.........2...........5.4.7..8...3....1.9....3..4..2...5.1........8.6..."

func contradiction() string {
	line := []byte(strings.Repeat(".", 81))
	line[0], line[4] = '5', '5'
	return string(line)
}

func TestSolveAllKeepsOrderAndIsolatesFailures(t *testing.T) {
	lines := []string{testPuzzle, "bogus", contradiction()}

	results, err := SolveAll(context.Background(), lines, 4)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, lines[i], r.Input)
	}

	require.True(t, results[0].Solved())
	assert.True(t, results[0].Solution.Grid().Solved())

	require.False(t, results[1].Solved())
	assert.Error(t, results[1].Err)

	require.False(t, results[2].Solved())
	var ex *sudoku.Exhausted
	assert.True(t, errors.As(results[2].Err, &ex))
}

func TestSolveAllParallelMatchesSequential(t *testing.T) {
	lines := []string{testPuzzle, contradiction(), testPuzzle}

	seq, err := SolveAll(context.Background(), lines, 1)
	require.NoError(t, err)
	par, err := SolveAll(context.Background(), lines, 8)
	require.NoError(t, err)

	for i := range lines {
		assert.Equal(t, seq[i].Solved(), par[i].Solved())
		if seq[i].Solved() {
			assert.Equal(t, seq[i].Solution.String(), par[i].Solution.String())
		}
	}
}

func TestSolveAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SolveAll(ctx, []string{testPuzzle, testPuzzle}, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolveAllEmpty(t *testing.T) {
	results, err := SolveAll(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
