package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:access:"

// Blacklist records revoked access tokens in Redis until they would have
// expired anyway. A nil client disables revocation.
type Blacklist struct {
	client *redis.Client
}

func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// DialBlacklist connects to Redis and returns a blacklist only when the server answers a ping.
// On failure the client is closed so callers can run without revocation.
func DialBlacklist(ctx context.Context, opts *redis.Options) (*Blacklist, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewBlacklist(client), nil
}

// Close releases the Redis connection.
func (b *Blacklist) Close() error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Close()
}

// Enabled reports whether revocations are persisted.
func (b *Blacklist) Enabled() bool {
	return b != nil && b.client != nil
}

// key hashes the token so raw credentials never sit in Redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}

// Revoke stores the token in the blacklist with TTL.
// If no Redis client is configured, this is a no-op and returns nil.
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if !b.Enabled() || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, key(token), "1", ttl).Err()
}

// IsRevoked returns true when the token exists in the Redis blacklist.
// If no Redis client is configured, returns (false, nil).
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if !b.Enabled() {
		return false, nil
	}
	exists, err := b.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Ping checks the Redis connection; used by readiness.
func (b *Blacklist) Ping(ctx context.Context) error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Ping(ctx).Err()
}
