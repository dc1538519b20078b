package handlers

import (
	"encoding/json"
	"net/http"

	"mode-allocation-simulator/internal/platform/obs"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// logFailure records an internal error; clients only see a generic message.
func logFailure(r *http.Request, msg string, err error) {
	zap.L().Error(msg,
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
