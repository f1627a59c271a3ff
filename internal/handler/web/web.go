// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package web is shared JSON plumbing for the handler packages: request
// decoding and the mapping from the catalog error taxonomy to HTTP
// statuses.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tastebook/tastebook/catalog"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Decode unmarshals the request body into v, responding with a 400 and
// returning false on malformed input.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body", Code: "validation_failed"})
		return false
	}
	return true
}

// Respond writes v as a JSON response.
func Respond(r *http.Request, w http.ResponseWriter, v any) {
	if err := json.NewEncoder(newWriter(w)).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "web: encoding response", "error", err)
	}
}

// RespondError maps err onto the error taxonomy and writes it as a JSON
// error response.
func RespondError(r *http.Request, w http.ResponseWriter, err error) {
	var status int
	var body errorBody
	var mutErr *catalog.MutationError
	switch {
	case errors.Is(err, catalog.ErrAuthRequired):
		status, body = http.StatusUnauthorized, errorBody{Error: "sign in required", Code: "auth_required"}
	case errors.Is(err, catalog.ErrInvalidInput):
		status, body = http.StatusBadRequest, errorBody{Error: err.Error(), Code: "validation_failed"}
	case errors.Is(err, catalog.ErrNotFound):
		status, body = http.StatusNotFound, errorBody{Error: "not found", Code: "not_found"}
	case errors.Is(err, catalog.ErrIndexRequired):
		// Operator-fixable: the store needs a composite index created.
		status, body = http.StatusInternalServerError, errorBody{Error: err.Error(), Code: "index_required"}
	case errors.Is(err, catalog.ErrLoadInProgress):
		status, body = http.StatusConflict, errorBody{Error: "a load is already in flight", Code: "load_in_progress"}
	case errors.As(err, &mutErr):
		status, body = http.StatusBadGateway, errorBody{Error: "write failed", Code: "mutation_failed"}
	default:
		status, body = http.StatusInternalServerError, errorBody{Error: "internal error", Code: "internal"}
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "web: request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	hw := newWriter(w)
	hw.WriteHeader(status)
	_ = json.NewEncoder(hw).Encode(v)
}

func newWriter(w http.ResponseWriter) http.ResponseWriter {
	w.Header().Set("Content-Type", "application/json")
	return w
}
