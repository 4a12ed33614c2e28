package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// Pinger reports whether the hosted backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns a health check endpoint backed by the data API.
func HealthHandler(backend Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}
