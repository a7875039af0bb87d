package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "INFO"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := middleware.RequestID(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("record is not JSON: %v (%s)", err, buf.String())
	}
	if rec["method"] != "GET" || rec["path"] != "/api/rates" {
		t.Fatalf("unexpected record %v", rec)
	}
	if status, _ := rec["status"].(float64); status != http.StatusTeapot {
		t.Fatalf("status = %v", rec["status"])
	}
	if id, _ := rec["request_id"].(string); id == "" {
		t.Fatal("expected request_id")
	}
}
