package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the uniform error body. Details carries the full
// validation error list when present.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorResponse{
		Code:    status,
		Message: msg,
		Details: details,
	})
}
