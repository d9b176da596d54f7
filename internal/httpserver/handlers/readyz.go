package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/logger"
)

const readyzTimeout = 2 * time.Second

type componentStatus struct {
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports whether the store answers; 503 when it does not.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		start := time.Now()
		err := d.Store.Ping(ctx)
		redis := componentStatus{OK: err == nil, LatencyMs: time.Since(start).Milliseconds()}
		if err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			redis.Error = "redis unreachable"
		}

		status := http.StatusOK
		if !redis.OK {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:      redis.OK,
			Components: map[string]componentStatus{"redis": redis},
		})
	}
}
