package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitsandvolts/boxcost/internal/config"
	"github.com/bitsandvolts/boxcost/internal/logging"
	"github.com/bitsandvolts/boxcost/internal/pricingapi"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

type server struct {
	upstream *pricingapi.Client
	session  *ratecard.Session
	now      func() time.Time
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	for _, w := range cfg.Warnings {
		slog.Warn(w)
	}

	srv := &server{
		upstream: pricingapi.NewClient(cfg.RatesBaseURL, cfg.PricingBaseURL, cfg.UpstreamTimeout),
		session:  ratecard.NewSession(),
		now:      time.Now,
	}

	addr := ":" + cfg.Port
	slog.Info("listening",
		"addr", addr,
		"rates_base_url", cfg.RatesBaseURL,
		"pricing_base_url", cfg.PricingBaseURL,
	)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("server stopped", "error", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/rates", s.handleGetRates)
		r.Post("/rates", s.handleSaveRates)
		r.Get("/materials", s.handleMaterials)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/export", s.handleEstimateExport)
	})
	return r
}
