package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chronosvault/chronosvault/internal/model"
)

// sessionKeyPrefix is the Redis key prefix for session records.
const sessionKeyPrefix = "session:"

// GetSession retrieves a session by its opaque token.
// Returns nil if the token is unknown or expired (not an error).
// Transport failures are reported so a Redis outage is not mistaken
// for a revoked token.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Session, error) {
	key := sessionKeyPrefix + token

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Miss or expiry is not an error
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupted entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &session, nil
}

// SetSession stores a session under its token with the given TTL.
func (c *Cache) SetSession(ctx context.Context, token string, session *model.Session, ttl time.Duration) error {
	key := sessionKeyPrefix + token

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeleteSession revokes a session token. Used on logout.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token
	return c.client.Del(ctx, key).Err()
}
