package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelist/reelist/internal/common"
)

// errorResponse is the uniform error body: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps a service error onto an HTTP status and the uniform error
// body. Unrecognized errors become a generic 500 so internal details never
// leak to the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromErr(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
		if errors.Is(err, common.ErrConfig) {
			msg = common.ErrConfig.Error()
		}
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
