package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/version"
)

type healthzResponse struct {
	Status    string       `json:"status"`
	StartedAt time.Time    `json:"started_at"`
	Uptime    string       `json:"uptime"`
	Build     version.Info `json:"build"`
}

// Healthz reports liveness, uptime and the build of the running binary.
// It never touches Redis; readiness is Readyz's job.
func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			StartedAt: d.StartTime.UTC(),
			Uptime:    d.TimeNow().Sub(d.StartTime).Round(time.Second).String(),
			Build:     d.Build,
		})
	}
}
