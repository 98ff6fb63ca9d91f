package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/vturenko/sudoku-server/internal/store"
)

// kvSessions keeps solve sessions in the sqlite gob store. It is the
// fallback backend for deployments without a postgres database.
//
// Sessions are stored under their id; a second entry under "puzzle:"+puzzle
// maps each submitted puzzle to its session id for duplicate detection.
type kvSessions struct {
	kv *store.Store
}

const puzzleKeyPrefix = "puzzle:"

func openKvSessions(path string) (*kvSessions, error) {
	kv, err := store.Open(path, "sessions")
	if err != nil {
		return nil, err
	}
	return &kvSessions{kv}, nil
}

func newSessionId() string {
	var b [16]byte
	rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func (s *kvSessions) CreateSession(ctx context.Context, session *SolveSession) error {
	puzzleKey := puzzleKeyPrefix + session.Puzzle
	if err := s.kv.Get(puzzleKey, nil); err == nil {
		return errDuplicatePuzzle
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	session.SessionId = newSessionId()
	session.CreatedAt = time.Now().UTC()
	if err := s.kv.Set(session.SessionId, *session); err != nil {
		return err
	}
	return s.kv.Set(puzzleKey, session.SessionId)
}

func (s *kvSessions) GetSession(ctx context.Context, sessionId string) (*SolveSession, error) {
	if strings.HasPrefix(sessionId, puzzleKeyPrefix) {
		return nil, errSessionNotFound
	}
	var session SolveSession
	if err := s.kv.Get(sessionId, &session); errors.Is(err, store.ErrNotFound) {
		return nil, errSessionNotFound
	} else if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *kvSessions) Records(ctx context.Context, limit int) ([]SolveRecord, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, err
	}
	var records []SolveRecord
	for _, key := range keys {
		if strings.HasPrefix(key, puzzleKeyPrefix) {
			continue
		}
		var session SolveSession
		if err := s.kv.Get(key, &session); err != nil {
			return nil, err
		}
		if !session.Solved {
			continue
		}
		records = append(records, SolveRecord{
			Puzzle:      session.Puzzle,
			SolveTimeMs: float64(session.SolveTime) / float64(time.Millisecond),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SolveTimeMs < records[j].SolveTimeMs
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *kvSessions) Close() {
	if err := s.kv.Close(); err != nil {
		log.Error("failed to close session store: ", err)
	}
}
