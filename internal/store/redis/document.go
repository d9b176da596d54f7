package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bio/internal/normalize"
)

// GetDocument returns the stored wire-shape document of a user.
func (s *Store) GetDocument(ctx context.Context, username string) (normalize.Wire, error) {
	data, err := s.client.Get(ctx, DocumentKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("document of %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	w, err := normalize.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	return w, nil
}

// SaveDocument replaces the stored document of a user.
func (s *Store) SaveDocument(ctx context.Context, username string, w normalize.Wire) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := s.client.Set(ctx, DocumentKey(username), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// SeedDocument stores w only if the user has no document yet, and returns
// whichever document ends up stored.
func (s *Store) SeedDocument(ctx context.Context, username string, w normalize.Wire) (normalize.Wire, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	created, err := s.client.SetNX(ctx, DocumentKey(username), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to seed document: %w", err)
	}
	if created {
		return w, nil
	}
	return s.GetDocument(ctx, username)
}
