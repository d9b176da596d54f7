package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/validate"
)

// Export returns the stored document of the session user as indented JSON.
// Pending changes are written first so the export reflects them.
func (e *Engine) Export(ctx context.Context) ([]byte, error) {
	username := e.Username()
	if username == "" {
		e.notify(LevelError, msgExportLogin)
		return nil, ErrNotAuthenticated
	}
	if err := e.Flush(ctx); err != nil {
		return nil, err
	}

	doc, err := e.store.ExportDocument(ctx, username)
	if err != nil {
		e.log.Warn("failed to export document", logger.String("user", username), logger.Error(err))
		e.notify(LevelError, msgExportFailed)
		return nil, fmt.Errorf("export document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		e.notify(LevelError, msgExportFailed)
		return nil, fmt.Errorf("encode export: %w", err)
	}

	e.notify(LevelSuccess, msgExported)
	return data, nil
}

// Import replaces the stored document with the content of an export file
// and reloads it. The file is checked before anything reaches the store;
// a rejected file leaves the session untouched.
func (e *Engine) Import(ctx context.Context, data []byte) error {
	username := e.Username()
	if username == "" {
		e.notify(LevelError, msgImportLogin)
		return ErrNotAuthenticated
	}
	if !json.Valid(data) {
		e.notify(LevelError, msgImportFailed)
		return fmt.Errorf("import: %w", ErrInvalidArgument)
	}

	doc, err := validate.Import(data)
	if err != nil {
		e.notify(LevelError, msgImportInvalid)
		return fmt.Errorf("import: %w", err)
	}

	if err := e.Flush(ctx); err != nil {
		return err
	}
	if err := e.store.ImportDocument(ctx, username, doc); err != nil {
		e.log.Warn("failed to import document", logger.String("user", username), logger.Error(err))
		e.notify(LevelError, msgImportFailed)
		return fmt.Errorf("import document: %w", err)
	}

	e.notify(LevelSuccess, msgImported)
	return e.Load(ctx)
}
