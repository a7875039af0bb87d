package ratestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bitsandvolts/boxcost/internal/migrations"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

// NewPool opens a PostgreSQL pool and checks connectivity.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// MigratePostgres runs the postgres migrations over pool.
func MigratePostgres(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(db, migrations.Postgres)
}

// PgStore is the PostgreSQL Store.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Get(ctx context.Context) (Record, error) {
	var (
		payload   []byte
		updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT payload::text, updated_at FROM rate_cards WHERE id = 1`,
	).Scan(&payload, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("query rate card: %w", err)
	}

	w, err := decode(payload)
	if err != nil {
		return Record{}, err
	}
	return Record{Wire: w, UpdatedAt: updatedAt}, nil
}

func (s *PgStore) Put(ctx context.Context, w ratecard.Wire) error {
	payload, err := encode(w)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO rate_cards (id, payload, updated_at)
		 VALUES (1, $1::json, NOW())
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		string(payload),
	); err != nil {
		return fmt.Errorf("upsert rate card: %w", err)
	}
	return nil
}
