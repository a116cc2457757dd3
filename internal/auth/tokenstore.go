// internal/auth/tokenstore.go
// Short-lived password reset tokens. Only the SHA-256 digest is stored,
// keyed to the user it was issued for.

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrTokenInvalid = errors.New("invalid or expired token")

// ResetTokenStore holds pending password reset tokens
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume resolves the token to its user and invalidates it
	Consume(ctx context.Context, token string) (string, error)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) ResetTokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) key(token string) string {
	return "pwreset:" + hashToken(token)
}

func (s *redisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Consume(ctx context.Context, token string) (string, error) {
	key := s.key(token)
	userID, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}
	s.client.Del(ctx, key)
	return userID, nil
}

// memoryTokenStore backs deployments without Redis
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
}

type memoryToken struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryTokenStore() ResetTokenStore {
	return &memoryTokenStore{tokens: make(map[string]memoryToken)}
}

func (s *memoryTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[hashToken(token)] = memoryToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[hashToken(token)]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrTokenInvalid
	}
	delete(s.tokens, hashToken(token))
	return entry.userID, nil
}
