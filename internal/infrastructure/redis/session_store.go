package redis

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/eventhub/internal/domain"
)

// SessionStore keeps opaque refresh tokens in Redis. The raw token is never
// stored; the key is rt:<sha256(token)> and the value is the user id. TTL
// expiry is Redis's job.
type SessionStore struct {
	rdb    *goredis.Client
	prefix string

	tokenBytes int
}

func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{
		rdb:        c.rdb,
		prefix:     "rt:",
		tokenBytes: 32,
	}
}

func (s *SessionStore) CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := s.newOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// RotateRefreshToken deletes the old token and mints a replacement for the
// same user in one atomic step.
func (s *SessionStore) RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, string, error) {
	oldToken = strings.TrimSpace(oldToken)
	if oldToken == "" {
		return "", "", domain.ErrUnauthorized("invalid refresh token")
	}

	newToken, err := s.newOpaqueToken()
	if err != nil {
		return "", "", err
	}

	const lua = `
local v = redis.call("GET", KEYS[1])
if not v then
  return nil
end
redis.call("DEL", KEYS[1])
redis.call("SET", KEYS[2], v, "PX", ARGV[1])
return v
`
	res, err := s.rdb.Eval(ctx, lua, []string{s.key(oldToken), s.key(newToken)}, ttl.Milliseconds()).Result()
	if err == goredis.Nil || res == nil {
		return "", "", domain.ErrUnauthorized("invalid refresh token")
	}
	if err != nil {
		return "", "", err
	}

	userID, ok := res.(string)
	if !ok || userID == "" {
		return "", "", domain.ErrUnauthorized("invalid refresh token")
	}
	return newToken, userID, nil
}

func (s *SessionStore) RevokeRefreshToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.rdb.Del(ctx, s.key(token)).Err()
}

func (s *SessionStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}

func (s *SessionStore) newOpaqueToken() (string, error) {
	b := make([]byte, s.tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
