package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const upsertDocument = `
	INSERT INTO documents (key, body, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`

// Postgres keeps the documents as rows of a single jsonb table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the documents table when missing.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}

	return nil
}

func (s *Postgres) Load(ctx context.Context) (*rental.State, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, body FROM documents WHERE key IN ($1, $2)`, keyUsers, keyAppData)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	var users, data []byte

	for rows.Next() {
		var (
			key  string
			body []byte
		)

		if err := rows.Scan(&key, &body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		switch key {
		case keyUsers:
			users = body
		case keyAppData:
			data = body
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return decodeState(users, data), nil
}

// Save writes both documents in one transaction, serialized across
// processes by an advisory lock.
func (s *Postgres) Save(ctx context.Context, st *rental.State) error {
	users, data, err := encodeState(st)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey()); err != nil {
		return fmt.Errorf("acquiring save lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, upsertDocument, keyUsers, users); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}

	if _, err := tx.ExecContext(ctx, upsertDocument, keyAppData, data); err != nil {
		return fmt.Errorf("saving app data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Postgres) Session(ctx context.Context) (int64, bool, error) {
	var body []byte

	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = $1`, keySession).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("loading session: %w", err)
	}

	id, ok := decodeSession(body)

	return id, ok, nil
}

func (s *Postgres) SetSession(ctx context.Context, userID int64) error {
	body, err := encodeSession(userID)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, upsertDocument, keySession, body); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

func (s *Postgres) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, keySession); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

func lockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("rentbook/documents"))

	return int64(h.Sum64())
}
