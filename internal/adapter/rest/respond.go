package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// errorResponse is the wire shape of every error body
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Machine-distinguishable error codes
const (
	codeValidation        = "validation_error"
	codeNotFound          = "not_found"
	codeInvalidState      = "invalid_state"
	codeInsufficientFunds = "insufficient_funds"
	codePersistence       = "persistence_error"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// classify maps a domain error to an HTTP status and taxonomy code
func classify(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity, codeValidation
	case domain.IsNotFound(err):
		return http.StatusNotFound, codeNotFound
	case domain.IsInvalidState(err):
		return http.StatusConflict, codeInvalidState
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, codeInsufficientFunds
	}
	return http.StatusInternalServerError, codePersistence
}

// writeError classifies err and writes the error body. Server faults are
// logged with the underlying cause and surfaced with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeValidation, Message: message})
}
