// Package handlers implements the JSON API: public read endpoints,
// admin authentication, and session-gated post mutation. Handlers
// translate requests into store calls and map store results onto
// response outcomes; validation runs strictly before any store call.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeMessage writes a {"message": ...} error body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeValidationErrors reports a schema violation with field-level
// details. The store is never reached on this path.
func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Invalid post data",
		"errors":  errs,
	})
}
