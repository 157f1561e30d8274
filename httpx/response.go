// Package httpx holds the JSON response helpers and the header conventions
// shared by the API handlers and the access clients.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every API error: a snake_case code plus
// optional details, such as field violations.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with status. A nil payload is written as null.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		// avoid writing partial JSON
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}

// NoContent writes a bodiless status, 204 for deletions.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
