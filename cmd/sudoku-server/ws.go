package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vturenko/sudoku-server/internal/sudoku"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

type wsError struct {
	Error string `json:"error"`
}

// handleConnectWs streams solves over one connection. Every text message is
// a single puzzle line; every reply is either the recorded session or an
// error payload for malformed lines.
func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		line := strings.TrimSpace(string(message))
		log.Debug("\t> ", line)

		grid, err := sudoku.ParseGrid([]byte(line))
		if err != nil {
			if err := c.WriteJSON(wsError{err.Error()}); err != nil {
				log.Error("write: ", err)
				break
			}
			continue
		}

		session := &SolveSession{Puzzle: line}
		start := time.Now()
		solved, serr := sudoku.TrySolveContext(context.Background(), grid)
		session.SolveTime = time.Since(start)
		if serr == nil {
			session.Solution = solved.String()
			session.Solved = true
		}

		if err := db.CreateSession(context.Background(), session); err != nil &&
			!errors.Is(err, errDuplicatePuzzle) {
			log.Error(err)
			if err := c.WriteJSON(wsError{"failed to record session"}); err != nil {
				log.Error("write: ", err)
				break
			}
			continue
		}

		if err := c.WriteJSON(session); err != nil {
			log.Error("write: ", err)
			break
		}
	}
}
