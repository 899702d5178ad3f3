// Package common provides shared helpers for UI features.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwell-labs/inkwell/internal/service"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of error responses.
type ErrorBody struct {
	Error string `json:"error"`
	Op    string `json:"op,omitempty"`
	Step  string `json:"step,omitempty"`
	Path  string `json:"path,omitempty"`
}

// WriteError maps a service error to an HTTP status and writes the body.
func WriteError(w http.ResponseWriter, err error) {
	body := ErrorBody{Error: err.Error()}

	var opErr *service.OpError
	if errors.As(err, &opErr) {
		body.Op = opErr.Op
		body.Step = opErr.Step
		body.Path = opErr.Path
	}

	WriteJSON(w, StatusFor(err), body)
}

// StatusFor maps service sentinel errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidPath):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUpstream):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
