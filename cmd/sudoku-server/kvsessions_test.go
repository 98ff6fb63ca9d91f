package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKvSessions(t *testing.T) *kvSessions {
	t.Helper()

	f, err := os.CreateTemp("", "sessions-")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := openKvSessions(f.Name())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestKvSessionsRoundtrip(t *testing.T) {
	s := setupKvSessions(t)
	ctx := context.Background()

	session := &SolveSession{
		Puzzle:    "p1",
		Solution:  "s1",
		Solved:    true,
		SolveTime: 2 * time.Millisecond,
	}
	require.NoError(t, s.CreateSession(ctx, session))
	require.NotEmpty(t, session.SessionId)
	require.False(t, session.CreatedAt.IsZero())

	got, err := s.GetSession(ctx, session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, session.Puzzle, got.Puzzle)
	assert.Equal(t, session.Solution, got.Solution)
	assert.Equal(t, session.SolveTime, got.SolveTime)

	_, err = s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestKvSessionsRejectsDuplicatePuzzle(t *testing.T) {
	s := setupKvSessions(t)
	ctx := context.Background()

	first := &SolveSession{Puzzle: "p1", Solved: true}
	require.NoError(t, s.CreateSession(ctx, first))

	second := &SolveSession{Puzzle: "p1", Solved: true}
	assert.ErrorIs(t, s.CreateSession(ctx, second), errDuplicatePuzzle)

	// The puzzle index entry must not leak as a session.
	_, err := s.GetSession(ctx, puzzleKeyPrefix+"p1")
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestKvSessionsRecords(t *testing.T) {
	s := setupKvSessions(t)
	ctx := context.Background()

	sessions := []*SolveSession{
		{Puzzle: "p0", Solution: "s0", Solved: true, SolveTime: 5 * time.Millisecond},
		{Puzzle: "p1", Solution: "s1", Solved: true, SolveTime: 1 * time.Millisecond},
		{Puzzle: "p2", Solution: "s2", Solved: true, SolveTime: 3 * time.Millisecond},
		{Puzzle: "p3", SolveTime: 9 * time.Millisecond},
	}
	for _, session := range sessions {
		require.NoError(t, s.CreateSession(ctx, session))
	}

	records, err := s.Records(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p1", records[0].Puzzle)
	assert.Equal(t, "p2", records[1].Puzzle)

	all, err := s.Records(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
