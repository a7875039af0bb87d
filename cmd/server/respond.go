package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bitsandvolts/boxcost/internal/pricingapi"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/validation"
)

// Error codes of the JSON error body.
const (
	codeInvalidJSON     = "invalid_json"
	codeParseError      = "parse_error"
	codeValidation      = "validation_failed"
	codeNotReady        = "not_ready"
	codeMapping         = "mapping_failed"
	codeUpstream        = "upstream_error"
	codeInvalidUpstream = "invalid_upstream_payload"
	codeBadFormat       = "unsupported_format"
	codeInternal        = "internal_error"
)

type fieldProblem struct {
	Field    string          `json:"field"`
	Kind     validation.Kind `json:"kind,omitempty"`
	RawValue *string         `json:"rawValue,omitempty"`
	Message  string          `json:"message"`
}

type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Fields  []fieldProblem `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []fieldProblem) {
	writeJSON(w, status, errorBody{Error: code, Message: message, Fields: fields})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON: "+err.Error(), nil)
		return false
	}
	return true
}

// writeParseError answers 400 with one entry per unparsable field.
func writeParseError(w http.ResponseWriter, err error) {
	perrs := validation.ParseErrors(err)
	fields := make([]fieldProblem, 0, len(perrs))
	for _, pe := range perrs {
		raw := pe.Raw
		fields = append(fields, fieldProblem{Field: pe.Field, RawValue: &raw, Message: pe.Error()})
	}
	writeError(w, http.StatusBadRequest, codeParseError, "some values are not valid numbers", fields)
}

// writeValidationError answers 422, or 409 when the only thing blocking the
// request is a rate card that has not been loaded.
func writeValidationError(w http.ResponseWriter, err error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error(), nil)
		return
	}

	status, code, msg := http.StatusUnprocessableEntity, codeValidation, "request has invalid fields"
	fields := make([]fieldProblem, 0, len(errs))
	for _, fe := range errs {
		if fe.Kind == validation.NotReady {
			status, code, msg = http.StatusConflict, codeNotReady, "rate card has not been loaded yet"
		}
		fields = append(fields, fieldProblem{Field: fe.Field, Kind: fe.Kind, Message: fe.Message})
	}
	writeError(w, status, code, msg, fields)
}

func mappingProblems(err error) []fieldProblem {
	var fields []fieldProblem
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		var me *ratecard.MappingError
		if errors.As(err, &me) {
			fields = append(fields, fieldProblem{Field: me.Path, Message: me.Reason})
		}
	}
	walk(err)
	return fields
}

// writeUpstreamError answers 502 for a failed call to the rate or pricing
// service.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var se *pricingapi.SubmissionError
	if errors.As(err, &se) {
		slog.WarnContext(r.Context(), "upstream call failed", "op", se.Op, "status", se.StatusCode, "error", se.Err)
	} else {
		slog.ErrorContext(r.Context(), "upstream call failed", "error", err)
	}
	writeError(w, http.StatusBadGateway, codeUpstream, err.Error(), nil)
}
