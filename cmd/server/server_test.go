package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitsandvolts/boxcost/internal/pricingapi"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

type fakeUpstream struct {
	mu       sync.Mutex
	wire     ratecard.Wire
	updated  []ratecard.Wire
	estimate string
	status   int
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		http.Error(w, "upstream down", f.status)
		return
	}
	switch r.URL.Path {
	case pricingapi.GetRatesPath:
		_ = json.NewEncoder(w).Encode(f.wire)
	case pricingapi.UpdateRatesPath:
		var wc ratecard.Wire
		if err := json.NewDecoder(r.Body).Decode(&wc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.updated = append(f.updated, wc)
		w.WriteHeader(http.StatusNoContent)
	case pricingapi.CalculateCostPath:
		_, _ = io.WriteString(w, f.estimate)
	default:
		http.NotFound(w, r)
	}
}

func newTestServer(t *testing.T) (*server, *fakeUpstream) {
	t.Helper()
	up := &fakeUpstream{
		wire:     ratecard.DefaultWire(),
		estimate: `{"breakdown":{"materialCost":120.456,"printingCost":30},"totalCost":150.456,"costPerBox":1.50456}`,
	}
	ts := httptest.NewServer(up)
	t.Cleanup(ts.Close)

	return &server{
		upstream: pricingapi.NewClient(ts.URL, ts.URL, time.Second),
		session:  ratecard.NewSession(),
		now:      func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
	}, up
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

const validEstimate = `{
	"length": "10", "width": "8", "sheetLength": "40", "sheetWidth": "30",
	"quantity": "100", "gsm": "300", "materialType": "F B B",
	"cmykColors": "4", "pantoneColors": "0",
	"laminationType": "gloss", "finishingType": "uv", "pastingType": "sidePasting"
}`

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.routes(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetRatesLoadsSession(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()

	rec := do(t, h, http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("materials before load = %d, want 409", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/rates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get rates = %d %s", rec.Code, rec.Body.String())
	}
	var card ratecard.Card
	if err := json.NewDecoder(rec.Body).Decode(&card); err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if len(card.Materials) != 4 || card.Materials[1].Name != "Kraft Brown" {
		t.Fatalf("materials = %+v", card.Materials)
	}

	rec = do(t, h, http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("materials = %d", rec.Code)
	}
	var got struct{ Materials []string }
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode materials: %v", err)
	}
	want := []string{"F B B", "Kraft Brown", "Kraft White", "Art Card"}
	if strings.Join(got.Materials, ",") != strings.Join(want, ",") {
		t.Fatalf("materials = %v, want %v", got.Materials, want)
	}
}

func TestGetRatesIncompleteUpstreamCard(t *testing.T) {
	s, up := newTestServer(t)
	up.wire.Machine = nil

	rec := do(t, s.routes(), http.MethodGet, "/api/rates", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error != codeInvalidUpstream || len(body.Fields) != 1 || body.Fields[0].Field != "machine" {
		t.Fatalf("body = %+v", body)
	}
	if s.session.Card() != nil {
		t.Fatal("session loaded from an incomplete card")
	}
}

func TestSaveRatesRoundTrip(t *testing.T) {
	s, up := newTestServer(t)
	h := s.routes()

	rec := do(t, h, http.MethodGet, "/api/rates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get rates = %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/rates", rec.Body.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("save rates = %d %s", rec.Code, rec.Body.String())
	}
	if len(up.updated) != 1 {
		t.Fatalf("upstream received %d updates", len(up.updated))
	}
	sent := up.updated[0]
	if keys := sent.Material.Keys(); strings.Join(keys, ",") != "FBB,kraftBrown,kraftWhite,artCard" {
		t.Fatalf("material keys = %v", keys)
	}
	if *sent.Printing.CMYK.RatePer1000Sheets != 250 {
		t.Fatalf("cmyk rate = %v", *sent.Printing.CMYK.RatePer1000Sheets)
	}
}

func TestSaveRatesParseError(t *testing.T) {
	s, up := newTestServer(t)
	body := `{"materials":[{"name":"FBB","costPerKg":"abc"}],"machine":{"speed":""}}`

	rec := do(t, s.routes(), http.MethodPost, "/api/rates", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := decodeError(t, rec)
	if got.Error != codeParseError || len(got.Fields) != 2 {
		t.Fatalf("body = %+v", got)
	}
	if got.Fields[0].Field != "materials[0].costPerKg" || *got.Fields[0].RawValue != "abc" {
		t.Fatalf("first field = %+v", got.Fields[0])
	}
	if len(up.updated) != 0 {
		t.Fatal("parse failure reached upstream")
	}
}

func TestSaveRatesValidationError(t *testing.T) {
	s, up := newTestServer(t)
	body := `{"materials":[{"name":"FBB","costPerKg":"0"}]}`

	rec := do(t, s.routes(), http.MethodPost, "/api/rates", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	got := decodeError(t, rec)
	if got.Error != codeValidation || len(got.Fields) == 0 {
		t.Fatalf("body = %+v", got)
	}
	if len(up.updated) != 0 {
		t.Fatal("invalid card reached upstream")
	}
}

func TestSaveRatesUpstreamFailureKeepsSession(t *testing.T) {
	s, up := newTestServer(t)
	h := s.routes()

	rec := do(t, h, http.MethodGet, "/api/rates", "")
	loaded := s.session.Card()

	up.status = http.StatusServiceUnavailable
	rec = do(t, h, http.MethodPost, "/api/rates", rec.Body.String())
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !s.session.Card().Equal(*loaded) {
		t.Fatal("session changed after a failed update")
	}
}

func TestEstimateRequiresLoadedCard(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.routes(), http.MethodPost, "/api/estimate", validEstimate)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeError(t, rec); got.Error != codeNotReady {
		t.Fatalf("body = %+v", got)
	}
}

func TestEstimate(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()
	do(t, h, http.MethodGet, "/api/rates", "")

	rec := do(t, h, http.MethodPost, "/api/estimate", validEstimate)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	want := `{"lines":[{"label":"Material Cost","amount":"120.46"},{"label":"Printing Cost","amount":"30.00"}],"totalCost":"150.46","costPerBox":"1.50"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s\nwant  %s", got, want)
	}
}

func TestEstimateUnknownMaterial(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()
	do(t, h, http.MethodGet, "/api/rates", "")

	body := strings.Replace(validEstimate, `"F B B"`, `"Duplex"`, 1)
	rec := do(t, h, http.MethodPost, "/api/estimate", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	got := decodeError(t, rec)
	if len(got.Fields) != 1 || got.Fields[0].Field != "materialType" {
		t.Fatalf("fields = %+v", got.Fields)
	}
}

func TestEstimateInvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.routes(), http.MethodPost, "/api/estimate", `{"length":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Error != codeInvalidJSON {
		t.Fatalf("body = %+v", got)
	}
}

func TestEstimateExport(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()
	do(t, h, http.MethodGet, "/api/rates", "")

	tests := []struct {
		format      string
		contentType string
		magic       []byte
	}{
		{"pdf", "application/pdf", []byte("%PDF")},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK")},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/estimate/export?format="+tt.format, validEstimate)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Fatalf("content type = %q", ct)
			}
			cd := rec.Header().Get("Content-Disposition")
			if !strings.Contains(cd, "Cost_Estimation_Report_EST-") || !strings.HasSuffix(cd, "."+tt.format+`"`) {
				t.Fatalf("content disposition = %q", cd)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), tt.magic) {
				t.Fatalf("body does not start with %q", tt.magic)
			}
		})
	}
}

func TestEstimateExportUnsupportedFormat(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.routes(), http.MethodPost, "/api/estimate/export?format=csv", validEstimate)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Error != codeBadFormat {
		t.Fatalf("body = %+v", got)
	}
}

func TestEstimateOutOfRangeQuantity(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()
	do(t, h, http.MethodGet, "/api/rates", "")

	body := strings.Replace(validEstimate, `"quantity": "100"`, `"quantity": "1e19"`, 1)
	rec := do(t, h, http.MethodPost, "/api/estimate", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := decodeError(t, rec)
	if got.Error != codeParseError || len(got.Fields) != 1 || got.Fields[0].Field != "quantity" {
		t.Fatalf("body = %+v", got)
	}
	if !strings.Contains(got.Fields[0].Message, "out of range") {
		t.Fatalf("message = %q", got.Fields[0].Message)
	}
}
