package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/ratestore"
)

type handler struct {
	store ratestore.Store
}

func (h *handler) getRates(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context())
	if errors.Is(err, ratestore.ErrNotFound) {
		http.Error(w, "no rate card stored", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read rate card", "error", err)
		http.Error(w, "failed to read rate card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", rec.UpdatedAt.UTC().Format(http.TimeFormat))
	if err := json.NewEncoder(w).Encode(rec.Wire); err != nil {
		slog.ErrorContext(r.Context(), "failed to write rate card", "error", err)
	}
}

// updateRates stores the posted card if it maps to a complete rate card.
func (h *handler) updateRates(w http.ResponseWriter, r *http.Request) {
	var wc ratecard.Wire
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&wc); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := ratecard.FromWire(wc); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := h.store.Put(r.Context(), wc); err != nil {
		slog.ErrorContext(r.Context(), "failed to store rate card", "error", err)
		http.Error(w, "failed to store rate card", http.StatusInternalServerError)
		return
	}
	slog.InfoContext(r.Context(), "rate card updated", "materials", len(wc.Material))
	w.WriteHeader(http.StatusNoContent)
}
