package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/normalize"
	redisstore "github.com/MrSnakeDoc/bio/internal/store/redis"
	"github.com/MrSnakeDoc/bio/internal/validate"
)

// GetAppData returns the user's document in client shape, seeding the
// starter document on first access.
func GetAppData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		log := d.Logger.With(logger.String("user", username))

		wire, err := d.Store.GetDocument(r.Context(), username)
		if errors.Is(err, redisstore.ErrNotFound) {
			wire, err = seed(d, r, username)
		}
		if err != nil {
			log.Error("failed to load document", logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not retrieve app data.")
			return
		}

		doc, err := normalize.ToClient(wire)
		if err != nil {
			log.Error("stored document is invalid", logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not retrieve app data.")
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func seed(d deps.Deps, r *http.Request, username string) (normalize.Wire, error) {
	wire, err := normalize.ToWire(catalog.NewUserDocument(username, d.NewID))
	if err == nil {
		wire, err = d.Store.SeedDocument(r.Context(), username, wire)
	}
	d.Metrics.DocumentWrites.WithLabelValues("seed", outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("seed document: %w", err)
	}
	d.Logger.Info("seeded starter document", logger.String("user", username))
	return wire, nil
}

// PutAppData replaces the user's document. Either shape is accepted; it is
// stored in wire shape.
func PutAppData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		data, err := readBody(w, r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid data format.")
			return
		}
		doc, err := normalize.DecodeDocument(data)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid data format.")
			return
		}

		if !saveDocument(w, d, r, "save", username, doc) {
			return
		}
		writeMessage(w, http.StatusOK, "App data updated successfully.")
	}
}

// Export returns the stored document as a download.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		wire, err := d.Store.GetDocument(r.Context(), username)
		if errors.Is(err, redisstore.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "No data found to export.")
			return
		}
		var doc domain.Document
		if err == nil {
			doc, err = normalize.ToClient(wire)
		}
		if err != nil {
			d.Logger.Error("failed to export document", logger.String("user", username), logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not export data.")
			return
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ExportFileName(username)))
		writeJSON(w, http.StatusOK, doc)
	}
}

// Import validates an export file and replaces the user's document with it.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		data, err := readBody(w, r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid data file format.")
			return
		}
		doc, err := validate.Import(data)
		if !writeValidation(w, err, "Invalid data file format.") {
			return
		}

		if !saveDocument(w, d, r, "import", username, doc) {
			return
		}
		d.Logger.Info("document imported", logger.String("user", username))
		writeMessage(w, http.StatusOK, "Data imported successfully.")
	}
}

// saveDocument converts doc to wire shape and saves it, answering the request on
// failure. It reports whether the document was saved.
func saveDocument(w http.ResponseWriter, d deps.Deps, r *http.Request, source, username string, doc domain.Document) bool {
	doc.Palettes = normalize.EnsureDefaultPalette(doc.Palettes)
	wire, err := normalize.ToWire(doc)
	if err != nil {
		d.Metrics.DocumentWrites.WithLabelValues(source, outcome(err)).Inc()
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Invalid data format: %v.", err))
		return false
	}

	err = d.Store.SaveDocument(r.Context(), username, wire)
	d.Metrics.DocumentWrites.WithLabelValues(source, outcome(err)).Inc()
	if err != nil {
		d.Logger.Error("failed to save document",
			logger.String("user", username),
			logger.String("source", source),
			logger.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not update app data.")
		return false
	}
	return true
}
