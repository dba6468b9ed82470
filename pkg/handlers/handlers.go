// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Problem is the error body written by RespondError.
type Problem struct {
	Detail string `json:"detail"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as {"detail": ...}.
// Server faults log at error level, client faults at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, Problem{Detail: err.Error()})
}

// RespondChallenge writes an authentication or authorization failure with
// a WWW-Authenticate: Bearer hint.
func RespondChallenge(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	RespondError(w, logger, status, err)
}
