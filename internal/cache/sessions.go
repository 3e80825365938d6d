package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

// Sessions tracks signed-out JWTs until they expire on their own. Tokens are
// stored hashed so the raw credential never lands in redis.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

func (s *Sessions) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	return s.rdb.Set(ctx, tokenKey(token), "1", ttl).Err()
}

// IsRevoked fails open: if redis is unreachable the token is treated as
// live, since signout is best-effort on top of short-lived JWTs.
func (s *Sessions) IsRevoked(ctx context.Context, token string) bool {
	n, err := s.rdb.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
