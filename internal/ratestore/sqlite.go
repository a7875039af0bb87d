package ratestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

// SQLiteStore keeps the rate card in the rate_cards singleton row.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context) (Record, error) {
	var (
		payload   string
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `SELECT payload, updated_at FROM rate_cards WHERE id = 1`).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("query rate card: %w", err)
	}

	w, err := decode([]byte(payload))
	if err != nil {
		return Record{}, err
	}
	return Record{Wire: w, UpdatedAt: updatedAt}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, w ratecard.Wire) error {
	payload, err := encode(w)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_cards (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(payload), s.now().UTC()); err != nil {
		return fmt.Errorf("upsert rate card: %w", err)
	}
	return nil
}
