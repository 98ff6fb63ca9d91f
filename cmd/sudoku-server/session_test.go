package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSessionMarshalJSON(t *testing.T) {
	session := SolveSession{
		SessionId: "42",
		Puzzle:    "puzzle",
		Solution:  "solution",
		Solved:    true,
		SolveTime: 1500 * time.Microsecond,
		CreatedAt: time.UnixMilli(1700000000000).UTC(),
	}

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "42", decoded["session_id"])
	assert.Equal(t, "puzzle", decoded["puzzle"])
	assert.Equal(t, "solution", decoded["solution"])
	assert.Equal(t, true, decoded["solved"])
	assert.InDelta(t, 1.5, decoded["solve_time_ms"], 1e-9)
	assert.Equal(t, float64(1700000000000), decoded["created_at"])
}

func TestSolveSessionMarshalJSONOmitsEmptySolution(t *testing.T) {
	session := SolveSession{
		SessionId: "43",
		Puzzle:    "puzzle",
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, false, decoded["solved"])
	_, hasSolution := decoded["solution"]
	assert.False(t, hasSolution)
}
