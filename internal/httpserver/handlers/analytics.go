package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/logger"
)

// RecordClick counts a visitor's click on a link. It is public.
func RecordClick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		linkID := chi.URLParam(r, "linkId")
		if username == "" || linkID == "" {
			writeMessage(w, http.StatusBadRequest, "username and linkId are required.")
			return
		}

		if err := d.Store.RecordClick(r.Context(), username, linkID, d.TimeNow()); err != nil {
			d.Logger.Error("failed to record click",
				logger.String("user", username),
				logger.String("link", linkID),
				logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not register click.")
			return
		}
		d.Metrics.Clicks.Inc()
		writeMessage(w, http.StatusOK, "Click registered successfully.")
	}
}

// Analytics lists click counts of the user's links, most clicked first.
func Analytics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		stats, err := d.Store.Analytics(r.Context(), username)
		if err != nil {
			d.Logger.Error("failed to load analytics", logger.String("user", username), logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not retrieve analytics data.")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
