package main

import (
	"fmt"
	"net/http"

	"github.com/bitsandvolts/boxcost/internal/estimate"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/report"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetRates fetches the stored rate card, maps it for display and makes
// it the session's working card.
func (s *server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	wc, err := s.upstream.FetchRates(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	card, err := ratecard.FromWire(wc)
	if err != nil {
		writeError(w, http.StatusBadGateway, codeInvalidUpstream, "rate service returned an incomplete rate card", mappingProblems(err))
		return
	}
	s.session.Load(card)
	writeJSON(w, http.StatusOK, card)
}

func (s *server) handleSaveRates(w http.ResponseWriter, r *http.Request) {
	var form ratecard.Form
	if !decodeJSON(w, r, &form) {
		return
	}
	card, err := form.Parse()
	if err != nil {
		writeParseError(w, err)
		return
	}
	if err := ratecard.Validate(card); err != nil {
		writeValidationError(w, err)
		return
	}
	wc, err := ratecard.ToWire(card)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeMapping, "rate card cannot be sent", mappingProblems(err))
		return
	}
	if err := s.upstream.UpdateRates(r.Context(), wc); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	s.session.Load(card)
	writeJSON(w, http.StatusOK, card)
}

func (s *server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	names, ok := s.session.MaterialNames()
	if !ok {
		writeError(w, http.StatusConflict, codeNotReady, "rate card has not been loaded yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"materials": names})
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.estimate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *server) handleEstimateExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, codeBadFormat, fmt.Sprintf("format %q is not supported, use pdf or xlsx", format), nil)
		return
	}

	rep, ok := s.estimate(w, r)
	if !ok {
		return
	}
	doc := report.NewDocument(rep, s.now())

	var (
		out         []byte
		err         error
		contentType string
	)
	switch format {
	case "pdf":
		out, err = report.PDF(doc)
		contentType = "application/pdf"
	case "xlsx":
		out, err = report.Excel(doc)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to render report", nil)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// estimate runs one cost request through parsing, validation against the
// session card and the pricing service. It writes the error response itself
// and reports false on failure.
func (s *server) estimate(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	var form estimate.Form
	if !decodeJSON(w, r, &form) {
		return report.Report{}, false
	}
	req, err := form.Parse()
	if err != nil {
		writeParseError(w, err)
		return report.Report{}, false
	}
	if err := estimate.Validate(req, s.session.Card()); err != nil {
		writeValidationError(w, err)
		return report.Report{}, false
	}
	res, err := s.upstream.Estimate(r.Context(), estimate.ToPayload(req))
	if err != nil {
		writeUpstreamError(w, r, err)
		return report.Report{}, false
	}
	return report.Format(res), true
}
