package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bio/internal/httpserver/mw"
)

func init() { Register("users", registerUsers) }

func registerUsers(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AuthBurst,
		RefillPerIPPerMin: d.AuthRefillPerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
		Now:               d.TimeNow,
	}))
	limited.Post("/users/register", handlers.Register(d))
	limited.Post("/users/login", handlers.Login(d))

	owner := r.With(mw.RequireOwner(d.Tokens, d.Logger))
	owner.Get("/users/{username}/appData", handlers.GetAppData(d))
	owner.Put("/users/{username}/appData", handlers.PutAppData(d))
	owner.Get("/users/{username}/export", handlers.Export(d))
	owner.Post("/users/{username}/import", handlers.Import(d))
	owner.Get("/users/{username}/analytics", handlers.Analytics(d))
}
