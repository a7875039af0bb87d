// Command ratestub is a local stand-in for the external rate service. It
// stores one wire rate card in SQLite, or in PostgreSQL when DATABASE_URL is
// set, and seeds it with the default card on first start.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitsandvolts/boxcost/internal/config"
	"github.com/bitsandvolts/boxcost/internal/db"
	"github.com/bitsandvolts/boxcost/internal/logging"
	"github.com/bitsandvolts/boxcost/internal/migrations"
	"github.com/bitsandvolts/boxcost/internal/pricingapi"
	"github.com/bitsandvolts/boxcost/internal/ratestore"
	"github.com/bitsandvolts/boxcost/internal/seed"
)

func main() {
	resetRates := flag.Bool("reset-rates", false, "overwrite the stored rate card with the defaults")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	stats, err := seed.Run(ctx, store, seed.Config{Reset: *resetRates})
	if err != nil {
		logging.Fatal("failed to seed rate card", "error", err)
	}
	slog.Info("rate card seeded", "inserts", stats.Inserts, "updates", stats.Updates)

	addr := ":" + cfg.StubPort
	slog.Info("rate stub listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           routes(store),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("rate stub stopped", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (ratestore.Store, func()) {
	if cfg.DatabaseURL != "" {
		pool, err := ratestore.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to postgres", "error", err)
		}
		if cfg.IsDev() {
			if err := ratestore.MigratePostgres(pool); err != nil {
				logging.Fatal("failed to run postgres migrations", "error", err)
			}
		}
		slog.Info("using postgres rate store")
		return ratestore.NewPgStore(pool), pool.Close
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to open database", "path", cfg.DBPath, "error", err)
	}
	if cfg.IsDev() {
		if err := migrations.Up(database, migrations.SQLite); err != nil {
			logging.Fatal("failed to run database migrations", "error", err)
		}
	}
	slog.Info("using sqlite rate store", "path", cfg.DBPath)
	return ratestore.NewSQLiteStore(database), func() { database.Close() }
}

func routes(store ratestore.Store) http.Handler {
	h := &handler{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get(pricingapi.GetRatesPath, h.getRates)
	r.Post(pricingapi.UpdateRatesPath, h.updateRates)
	return r
}
