package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vturenko/sudoku-server/internal/batch"
	"github.com/vturenko/sudoku-server/internal/sudoku"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type BatchParams struct {
	Workers int `schema:"workers"`
}

type RecordsParams struct {
	Limit int `schema:"limit"`
}

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	return w.Write(payload)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"ok\""))
}

// handleSolve accepts a single puzzle line in the request body, solves it
// and persists the attempt. Exhausted searches are recorded too and come
// back as 422 with the session payload.
func handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	line := strings.TrimSpace(string(body))
	grid, err := sudoku.ParseGrid([]byte(line))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	session := &SolveSession{Puzzle: line}
	start := time.Now()
	solved, err := sudoku.TrySolveContext(r.Context(), grid)
	session.SolveTime = time.Since(start)
	if err != nil {
		var ex *sudoku.Exhausted
		if !errors.As(err, &ex) {
			// The client went away mid-search.
			log.Warn("solve aborted: ", err)
			return
		}
	} else {
		session.Solution = solved.String()
		session.Solved = true
	}

	if err := db.CreateSession(r.Context(), session); errors.Is(err, errDuplicatePuzzle) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(err.Error()))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}

	if !session.Solved {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := db.GetSession(r.Context(), r.PathValue("id"))
	if errors.Is(err, errSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

type BatchResultJSON struct {
	Index       int     `json:"index"`
	Puzzle      string  `json:"puzzle"`
	Solution    *string `json:"solution,omitempty"`
	Error       *string `json:"error,omitempty"`
	SolveTimeMs float64 `json:"solve_time_ms"`
}

// handleBatch solves a whitespace-separated set of puzzle lines with up to
// ?workers concurrent searches. Batch results are returned inline and not
// persisted.
func handleBatch(w http.ResponseWriter, r *http.Request) {
	var params BatchParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	lines := strings.Fields(string(body))
	if len(lines) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("no puzzles in request body"))
		return
	}

	results, err := batch.SolveAll(r.Context(), lines, params.Workers)
	if err != nil {
		log.Warn("batch aborted: ", err)
		return
	}

	payload := make([]BatchResultJSON, len(results))
	for i, res := range results {
		out := BatchResultJSON{
			Index:       res.Index,
			Puzzle:      res.Input,
			SolveTimeMs: float64(res.SolveTime) / float64(time.Millisecond),
		}
		if res.Solved() {
			solution := res.Solution.String()
			out.Solution = &solution
		} else if res.Err != nil {
			message := res.Err.Error()
			out.Error = &message
		}
		payload[i] = out
	}
	if _, err := sendJSON(w, payload); err != nil {
		log.Error(err)
	}
}

func handleRecords(w http.ResponseWriter, r *http.Request) {
	params := RecordsParams{Limit: 20}
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	records, err := db.Records(r.Context(), params.Limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if records == nil {
		records = []SolveRecord{}
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
