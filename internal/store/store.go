// Package store is a small sqlite-backed gob key-value store. The server
// uses it to persist solve sessions when no postgres database is
// configured.
package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return s != ""
}

// Open opens (creating if needed) the sqlite file at path and binds the
// store to the named table. name may only contain Latin letters; it is
// interpolated into DDL.
func Open(path string, name string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s, err := New(db, name)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New binds a store to the named table of an existing connection.
func New(db *sql.DB, name string) (*Store, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, err
	}
	return &Store{name: name, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves a value into the pointer value. If key is not present,
// [ErrNotFound] is returned. A nil value discards the stored data.
func (s *Store) Get(key string, value any) error {
	var v []uint8
	if err := s.db.QueryRow(
		`SELECT value FROM `+s.name+` WHERE key = ?;`,
		key).Scan(&v); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
}

// Set inserts a new key-value pair or updates an existing one.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key without checking whether it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}

// Count returns the number of stored pairs.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM ` + s.name + `;`).Scan(&count)
	return count, err
}

// Keys returns every stored key in unspecified order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM ` + s.name + `;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
