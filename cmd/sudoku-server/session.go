package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	errSessionNotFound = errors.New("session not found")
	errDuplicatePuzzle = errors.New("puzzle already submitted")
)

// SolveSession records one solve attempt. Solution is empty when the search
// exhausted every candidate.
type SolveSession struct {
	SessionId string
	Puzzle    string
	Solution  string
	Solved    bool
	SolveTime time.Duration
	CreatedAt time.Time
}

type SolveSessionJSON struct {
	SessionId   string  `json:"session_id"`
	Puzzle      string  `json:"puzzle"`
	Solution    *string `json:"solution,omitempty"`
	Solved      bool    `json:"solved"`
	SolveTimeMs float64 `json:"solve_time_ms"`
	CreatedAt   int64   `json:"created_at"`
}

func (s SolveSession) MarshalJSON() ([]byte, error) {
	var solution *string
	if s.Solution != "" {
		solution = &s.Solution
	}
	return json.Marshal(SolveSessionJSON{
		SessionId:   s.SessionId,
		Puzzle:      s.Puzzle,
		Solution:    solution,
		Solved:      s.Solved,
		SolveTimeMs: float64(s.SolveTime) / float64(time.Millisecond),
		CreatedAt:   s.CreatedAt.UnixMilli(),
	})
}

// SolveRecord is one leaderboard row: a solved puzzle and its search time.
type SolveRecord struct {
	Puzzle      string  `db:"puzzle" json:"puzzle"`
	SolveTimeMs float64 `db:"solve_time_ms" json:"solve_time_ms"`
}

// sessionStore is the persistence surface shared by the postgres and sqlite
// backends. CreateSession fills in SessionId and CreatedAt on success.
type sessionStore interface {
	CreateSession(ctx context.Context, session *SolveSession) error
	GetSession(ctx context.Context, sessionId string) (*SolveSession, error)
	Records(ctx context.Context, limit int) ([]SolveRecord, error)
	Close()
}
