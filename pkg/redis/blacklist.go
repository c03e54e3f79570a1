package redis

import (
	"context"
	"time"
)

const blacklistPrefix = "museum:token:blacklist:"

func blacklistKey(jti string) string { return blacklistPrefix + jti }

// BlacklistToken 拉黑 jti，过期时间取 Token 剩余有效期；已过期的 Token 直接忽略
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.SetEx(ctx, blacklistKey(jti), 1, ttl).Err()
}

// IsBlacklisted 判断 jti 是否已被注销
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
