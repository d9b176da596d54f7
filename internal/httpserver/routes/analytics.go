package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/httpserver/handlers"
)

func init() { Register("analytics", registerAnalytics) }

func registerAnalytics(r chi.Router, d deps.Deps) {
	r.Post("/analytics/click/{username}/{linkId}", handlers.RecordClick(d))
}
