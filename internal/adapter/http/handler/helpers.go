package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp/syntax"

	"github.com/iho/ledgerd/internal/adapter/http/dto"
	"github.com/iho/ledgerd/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		cliErr    *domain.LedgerCliError
		regexpErr *syntax.Error
	)

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCannotRevert):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMalformedEntry):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cliErr):
		return http.StatusBadGateway
	case errors.As(err, &regexpErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
