package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stockroom-dev/stockroom-api/internal/platform/logger"
)

// Envelope is the single JSON shape written by every API route.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()),
			slog.String("trace_id", GetTraceID(r.Context())))
	}
}

// RespondOK writes a success envelope.
func RespondOK(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondFail writes a failure envelope. The error field carries detail when
// present, otherwise the lowercase status text.
func RespondFail(w http.ResponseWriter, r *http.Request, status int, message, detail string) {
	if detail == "" {
		detail = strings.ToLower(http.StatusText(status))
	}
	RespondWithJSON(w, r, status, Envelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
