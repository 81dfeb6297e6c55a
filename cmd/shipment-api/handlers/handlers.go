// Package handlers provides HTTP handlers for the shipment engine API.
package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponseDTO is the API error envelope.
type ErrorResponseDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, ErrorResponseDTO{Error: msg, Detail: detail})
}

// optionalString maps an empty string to a JSON null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
