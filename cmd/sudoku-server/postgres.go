package main

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const initSql = `
CREATE TABLE IF NOT EXISTS solve_session (
	solve_session_id	bigint	GENERATED ALWAYS AS IDENTITY
								PRIMARY KEY,
	puzzle				text	UNIQUE NOT NULL,
	solution			text	NULL,
	solved				boolean	NOT NULL,
	solve_time_ms		double precision NOT NULL,
	created_at			timestamp with time zone
								DEFAULT now()
								NOT NULL
);`

type postgres struct {
	db *pgxpool.Pool
}

func newPostgres(ctx context.Context, dbUrl string) (*postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ctx, initSql); err != nil {
		db.Close()
		return nil, err
	}
	return &postgres{db}, nil
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

func (pg *postgres) CreateSession(ctx context.Context, session *SolveSession) error {
	var solution *string
	if session.Solution != "" {
		solution = &session.Solution
	}
	var (
		sessionId int
		createdAt time.Time
	)
	err := pg.db.QueryRow(ctx, `
		INSERT INTO solve_session (
			puzzle, solution, solved, solve_time_ms
		)
		VALUES (
			@puzzle, @solution, @solved, @solve_time_ms
		)
		RETURNING solve_session_id, created_at;`,
		pgx.NamedArgs{
			"puzzle":        session.Puzzle,
			"solution":      solution,
			"solved":        session.Solved,
			"solve_time_ms": float64(session.SolveTime) / float64(time.Millisecond),
		}).Scan(&sessionId, &createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return errDuplicatePuzzle
		}
		return err
	}
	session.SessionId = strconv.Itoa(sessionId)
	session.CreatedAt = createdAt
	return nil
}

func (pg *postgres) GetSession(ctx context.Context, sessionId string) (*SolveSession, error) {
	id, err := strconv.Atoi(sessionId)
	if err != nil {
		return nil, errSessionNotFound
	}
	var (
		puzzle      string
		solution    *string
		solved      bool
		solveTimeMs float64
		createdAt   time.Time
	)
	if err := pg.db.QueryRow(ctx, `
		SELECT puzzle, solution, solved, solve_time_ms, created_at
		FROM solve_session
		WHERE solve_session_id = $1;`,
		id).Scan(
		&puzzle, &solution, &solved, &solveTimeMs, &createdAt,
	); errors.Is(err, pgx.ErrNoRows) {
		return nil, errSessionNotFound
	} else if err != nil {
		return nil, err
	}
	session := &SolveSession{
		SessionId: sessionId,
		Puzzle:    puzzle,
		Solved:    solved,
		SolveTime: time.Duration(solveTimeMs * float64(time.Millisecond)),
		CreatedAt: createdAt,
	}
	if solution != nil {
		session.Solution = *solution
	}
	return session, nil
}

func (pg *postgres) Records(ctx context.Context, limit int) ([]SolveRecord, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT puzzle, solve_time_ms
		FROM solve_session
		WHERE solved
		ORDER BY solve_time_ms
		LIMIT $1;`,
		limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveRecord])
}
