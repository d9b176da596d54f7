package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// User is an account record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUser claims the user's email and username. The email is checked
// first; a claimed email is released again if the username is taken.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	emailKey := EmailKey(u.Email)
	ok, err := s.client.SetNX(ctx, emailKey, u.Username, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim email: %w", err)
	}
	if !ok {
		return ErrEmailTaken
	}

	ok, err = s.client.SetNX(ctx, UserKey(u.Username), data, 0).Result()
	if err != nil || !ok {
		if delErr := s.client.Del(ctx, emailKey).Err(); delErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to release email: %w", delErr))
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return ErrUsernameTaken
	}
	return nil
}

// GetUser returns the account of a username.
func (s *Store) GetUser(ctx context.Context, username string) (User, error) {
	data, err := s.client.Get(ctx, UserKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return u, nil
}

// GetUserByEmail resolves an email through the index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	username, err := s.client.Get(ctx, EmailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, fmt.Errorf("email %s: %w", NormalizeEmail(email), ErrNotFound)
		}
		return User{}, fmt.Errorf("failed to resolve email: %w", err)
	}
	return s.GetUser(ctx, username)
}
