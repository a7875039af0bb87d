package pricingapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bitsandvolts/boxcost/internal/estimate"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != GetRatesPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(ratecard.DefaultWire())
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "", time.Second)
	w, err := c.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates: %v", err)
	}
	if keys := w.Material.Keys(); len(keys) != 4 || keys[0] != "FBB" {
		t.Fatalf("material keys = %v", keys)
	}
	if *w.Printing.CMYK.RatePer1000Sheets != 250 {
		t.Fatalf("cmyk rate = %v", *w.Printing.CMYK.RatePer1000Sheets)
	}
}

func TestUpdateRatesSendsJSON(t *testing.T) {
	var got ratecard.Wire
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != UpdateRatesPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	if err := c.UpdateRates(context.Background(), ratecard.DefaultWire()); err != nil {
		t.Fatalf("UpdateRates: %v", err)
	}
	if len(got.Finishing) != 4 || got.Machine == nil {
		t.Fatalf("server received %+v", got)
	}
}

func TestEstimate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CalculateCostPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"materialType":"FBB"`) {
			t.Errorf("unexpected body %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"breakdown":{"materialCost":120.456,"printingCost":30},"totalCost":150.456,"costPerBox":1.50456}`)
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, time.Second)
	res, err := c.Estimate(context.Background(), estimate.Payload{MaterialType: "FBB", Quantity: 100})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.TotalCost != 150.456 || res.Breakdown.Keys()[0] != "materialCost" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestUpstreamFailureIsSubmissionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate card locked", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, time.Second)
	err := c.UpdateRates(context.Background(), ratecard.DefaultWire())

	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if se.Op != "update rates" || se.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected error %+v", se)
	}
	if !strings.Contains(se.Error(), "rate card locked") {
		t.Fatalf("message = %q", se.Error())
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"breakdown": [1, 2]}`)
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, time.Second)
	_, err := c.Estimate(context.Background(), estimate.Payload{})
	var se *SubmissionError
	if !errors.As(err, &se) || se.StatusCode != http.StatusOK {
		t.Fatalf("expected decode SubmissionError, got %v", err)
	}
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("", "", time.Second)
	if _, err := c.FetchRates(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "", time.Second)
	_, err := c.FetchRates(context.Background())
	var se *SubmissionError
	if !errors.As(err, &se) || se.StatusCode != 0 {
		t.Fatalf("expected transport SubmissionError, got %v", err)
	}
}
