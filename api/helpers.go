package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	msgAccessDenied = "Access denied."
	msgUnauthorized = "Unauthorized."
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, map[string]any{"error": msg}, status)
}

// writeFieldError reports a validation failure naming the offending field.
func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, map[string]any{"error": msg, "field": field}, http.StatusBadRequest)
}

// writeDBError surfaces a persistence failure as 422 with the underlying
// message attached as metadata. Acceptable for an internal community tool;
// do not reuse for a hardened public API.
func writeDBError(w http.ResponseWriter, err error) {
	writeJSON(w, map[string]any{
		"error":    fmt.Sprintf("Database error: %s", err),
		"metadata": map[string]string{"message": err.Error()},
	}, http.StatusUnprocessableEntity)
}
