// Package ratelimit provides Redis-backed fixed-window rate limiting for the
// chat endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("connected to Redis at %s", addr)
	return client, nil
}

// Limiter counts requests per user within a fixed window.
type Limiter struct {
	rdb       *redis.Client
	maxReqs   int
	windowSec int
}

func NewLimiter(rdb *redis.Client, maxReqs, windowSec int) *Limiter {
	return &Limiter{
		rdb:       rdb,
		maxReqs:   maxReqs,
		windowSec: windowSec,
	}
}

// Middleware returns a gin handler enforcing the limit. The key is the
// authenticated user when available, else the client IP. Redis being down
// fails open: chat keeps working without limiting.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		if userID := c.GetString("userID"); userID != "" {
			key = "ratelimit:user:" + userID
		}
		ctx := c.Request.Context()

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			l.rdb.Expire(ctx, key, time.Duration(l.windowSec)*time.Second)
		}

		ttl, _ := l.rdb.TTL(ctx, key).Result()

		remaining := int64(l.maxReqs) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", l.maxReqs))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", int(ttl.Seconds())))

		if int(count) > l.maxReqs {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
