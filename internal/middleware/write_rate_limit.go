package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActionCounter reports how many audited actions an actor performed.
type ActionCounter interface {
	GetActionCount(actorID uuid.UUID, actionPrefix string, since time.Time) (int64, error)
}

// WriteRateLimit limits audited writes per user. Once a user exceeds
// twice the allowed rate they are blocked for an hour via Redis.
func WriteRateLimit(counter ActionCounter, redisClient *redis.Client, actionPrefix string, maxActions, windowMinutes int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || maxActions <= 0 {
			c.Next()
			return
		}

		userID := UserID(c)
		if userID == uuid.Nil {
			c.Next()
			return
		}

		ctx := context.Background()
		blockKey := fmt.Sprintf("write_blocked:%s:%s", userID.String(), actionPrefix)

		if redisClient != nil {
			blocked, err := redisClient.Get(ctx, blockKey).Result()
			if err == nil && blocked == "1" {
				ttl, _ := redisClient.TTL(ctx, blockKey).Result()
				c.JSON(http.StatusForbidden, gin.H{
					"error":                 "temporarily_blocked",
					"message":               "Too many changes in a short time. Please try again later.",
					"blocked_until_minutes": int(ttl.Minutes()),
				})
				c.Abort()
				return
			}
		}

		since := time.Now().UTC().Add(-time.Duration(windowMinutes) * time.Minute)
		count, err := counter.GetActionCount(userID, actionPrefix, since)
		if err != nil {
			// Log error but don't block the request
			log.Printf("WARN: write rate limit count failed: %v", err)
			c.Next()
			return
		}

		if count >= int64(maxActions*2) && redisClient != nil {
			_ = redisClient.Set(ctx, blockKey, "1", time.Hour).Err()
			c.JSON(http.StatusForbidden, gin.H{
				"error":               "temporarily_blocked",
				"message":             "Too many changes detected. Your account has been blocked for 1 hour.",
				"blocked_for_minutes": 60,
			})
			c.Abort()
			return
		}

		if count >= int64(maxActions) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "rate_limit_exceeded",
				"message":             "Too many changes in a short time. Please wait a few minutes.",
				"retry_after_minutes": windowMinutes,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
