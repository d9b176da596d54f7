// Package redis persists documents, accounts and click counters in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email already in use.
	ErrEmailTaken = errors.New("email address already in use")
	// ErrUsernameTaken is returned when registering a username already in use.
	ErrUsernameTaken = errors.New("username already taken")
)

// Store handles Redis operations for the document server.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
