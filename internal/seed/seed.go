// Package seed loads the default rate card into an empty rate store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/ratestore"
)

// Config contains the values required by startup seed.
type Config struct {
	// Reset overwrites a stored card with the defaults.
	Reset bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way: the default card is
// written only when the store is empty, unless cfg.Reset is set.
func Run(ctx context.Context, store ratestore.Store, cfg Config) (Stats, error) {
	stats := Stats{}

	_, err := store.Get(ctx)
	switch {
	case errors.Is(err, ratestore.ErrNotFound):
		if err := store.Put(ctx, ratecard.DefaultWire()); err != nil {
			return Stats{}, fmt.Errorf("insert default rate card: %w", err)
		}
		stats.Inserts++
	case err != nil:
		return Stats{}, fmt.Errorf("check rate card existence: %w", err)
	case cfg.Reset:
		if err := store.Put(ctx, ratecard.DefaultWire()); err != nil {
			return Stats{}, fmt.Errorf("reset rate card: %w", err)
		}
		stats.Updates++
	}

	return stats, nil
}
