package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// slidingWindow 在一次脚本调用内完成：清理窗口外成员、写入本次请求、计数、续期
// KEYS[1]=key  ARGV[1]=now(ns)  ARGV[2]=window(ns)  ARGV[3]=member  ARGV[4]=window(ms)
var slidingWindow = goredis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, tonumber(ARGV[1]) - tonumber(ARGV[2]))
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[3])
local n = redis.call('ZCARD', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return n
`)

// CheckRateLimit 滑动窗口限流，返回 true 表示本次请求仍在 limit 之内
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	n, err := slidingWindow.Run(ctx, c.rdb, []string{key},
		now, window.Nanoseconds(), uuid.NewString(), window.Milliseconds(),
	).Int64()
	if err != nil {
		c.logger.Warn("限流计数失败", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return n <= int64(limit), nil
}
