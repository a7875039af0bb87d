// Package ratestore persists the single wire rate card served by the local
// rate service.
package ratestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

// ErrNotFound is returned when no rate card has been stored yet.
var ErrNotFound = errors.New("not found")

// Record is the stored rate card and when it was last written.
type Record struct {
	Wire      ratecard.Wire
	UpdatedAt time.Time
}

// Store holds one rate card. Put replaces it whole.
type Store interface {
	Get(ctx context.Context) (Record, error)
	Put(ctx context.Context, w ratecard.Wire) error
}

func encode(w ratecard.Wire) ([]byte, error) {
	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode rate card: %w", err)
	}
	return b, nil
}

func decode(b []byte) (ratecard.Wire, error) {
	var w ratecard.Wire
	if err := json.Unmarshal(b, &w); err != nil {
		return ratecard.Wire{}, fmt.Errorf("decode stored rate card: %w", err)
	}
	return w, nil
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PgStore)(nil)
)
