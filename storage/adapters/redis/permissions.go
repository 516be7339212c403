package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"clubhub/internal/domain/access"
)

const defaultPermissionTTL = 5 * time.Minute

// PermissionCache кэширует решения внешней проверки прав в Redis.
// При недоступности Redis просто идём в источник: кэш не должен
// превращаться в точку отказа.
type PermissionCache struct {
	client *Client
	inner  access.PermissionChecker
	ttl    time.Duration
}

func NewPermissionCache(client *Client, inner access.PermissionChecker, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = defaultPermissionTTL
	}
	return &PermissionCache{client: client, inner: inner, ttl: ttl}
}

func (c *PermissionCache) HasPermission(ctx context.Context, userID string, action access.Action) (bool, error) {
	key := permissionKey(userID, action)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return val == "1", nil
	}
	if err != redis.Nil {
		log.Printf("[warn] redis get %s: %v", key, err)
	}

	ok, err := c.inner.HasPermission(ctx, userID, action)
	if err != nil {
		return false, err
	}

	stored := "0"
	if ok {
		stored = "1"
	}
	if err := c.client.Set(ctx, key, stored, c.ttl).Err(); err != nil {
		log.Printf("[warn] redis set %s: %v", key, err)
	}
	return ok, nil
}

// Invalidate сбрасывает закэшированное решение (например, после смены роли)
func (c *PermissionCache) Invalidate(ctx context.Context, userID string, action access.Action) error {
	return c.client.Del(ctx, permissionKey(userID, action)).Err()
}

func permissionKey(userID string, action access.Action) string {
	return fmt.Sprintf("perm:%s:%s", userID, action)
}
