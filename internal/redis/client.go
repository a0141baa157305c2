package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"curtain_store/internal/checkout"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenNotFound   = errors.New("admin token not found")
)

const (
	sessionPrefix = "session:"
	lockPrefix    = "checkout_lock:"
	adminPrefix   = "admin_token:"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Storefront sessions

func (c *Client) SaveSession(ctx context.Context, session *checkout.Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionPrefix+session.ID, jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	val, err := c.rdb.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session checkout.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, sessionPrefix+sessionID).Err()
}

// Checkout submit lock

// AcquireCheckoutLock returns a release func when the lock was taken, or
// ok=false when another submit for the session is still in flight.
func (c *Client) AcquireCheckoutLock(ctx context.Context, sessionID string, ttl time.Duration) (func(context.Context) error, bool, error) {
	key := lockPrefix + sessionID
	token := uuid.NewString()

	ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, c.rdb, []string{key}, token).Err()
	}
	return release, true, nil
}

// Admin login tokens

func (c *Client) SaveAdminToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return c.rdb.Set(ctx, adminPrefix+token, userID, ttl).Err()
}

func (c *Client) AdminUserID(ctx context.Context, token string) (uint, error) {
	id, err := c.rdb.Get(ctx, adminPrefix+token).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("failed to get admin token: %w", err)
	}
	return uint(id), nil
}

func (c *Client) DeleteAdminToken(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, adminPrefix+token).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
