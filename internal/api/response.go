package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope status values.
const (
	statusOK    = "ok"
	statusError = "error"
)

// envelope is a response body. Every body carries success and message.
type envelope map[string]any

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonOK writes a success envelope with the given message and extra fields.
func jsonOK(w http.ResponseWriter, status int, message string, fields envelope) {
	body := envelope{"success": statusOK, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	jsonResponse(w, status, body)
}

// jsonError writes an error envelope.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, envelope{"success": statusError, "message": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
