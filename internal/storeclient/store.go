// Package storeclient is the remote document store as seen by the engine:
// whole documents fetched and replaced per user, with a small error
// taxonomy the engine reacts to.
package storeclient

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/bio/internal/domain"
)

var (
	// ErrNotFound means the user has no stored document yet.
	ErrNotFound = errors.New("document not found")
	// ErrUnauthorized means the request carried no usable credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the credentials do not grant access to the user.
	ErrForbidden = errors.New("forbidden")
	// ErrNetwork covers transport failures and server-side errors.
	ErrNetwork = errors.New("store unreachable")
	// ErrInvalidDocument means the store rejected or returned a malformed document.
	ErrInvalidDocument = errors.New("invalid document")
)

// Store fetches and replaces whole per-user documents. Writes are atomic:
// a document is either fully stored or not at all.
type Store interface {
	FetchDocument(ctx context.Context, username string) (domain.Document, error)
	PersistDocument(ctx context.Context, username string, doc domain.Document) error
	ExportDocument(ctx context.Context, username string) (domain.Document, error)
	ImportDocument(ctx context.Context, username string, doc domain.Document) error
}

// IsAuthError reports whether err means the session credentials were rejected.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
