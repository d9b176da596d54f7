// Package routes collects route registrars from init functions and mounts
// them on the server router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry []entry

// Register adds a named registrar with optional middlewares applied to
// every route it mounts.
func Register(name string, reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every registrar. Called once from httpserver.New.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
		} else {
			e.reg(r.With(e.mws...), d)
		}
		d.Logger.Debugf("routes: mounted %s", e.name)
	}
}
