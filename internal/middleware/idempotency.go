package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-teamhub/internal/shared/apperror"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	idempotencyLockTTL   = 30 * time.Second
	idempotencyCacheTTL  = 24 * time.Hour
	ctxIdempotencyCache  = "idempotency_cache_key"
	ctxIdempotencyLock   = "idempotency_lock_key"
)

var ErrRequestInProgress = apperror.New(
	apperror.CodeConflict,
	"request with this idempotency key is still being processed",
	http.StatusConflict,
)

// Idempotency replays the cached response of a POST or PUT carrying an
// Idempotency-Key header, and rejects a concurrent duplicate while the
// first request is running. Handlers call CacheIdempotentResponse on
// success and ReleaseIdempotencyLock when done.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(headerIdempotencyKey)
		if rdb == nil || idempKey == "" {
			c.Next()
			return
		}
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID := c.GetString("user_id_validated")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Warn("idempotency lock unavailable", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Abort(c, ErrRequestInProgress)
			return
		}

		c.Set(ctxIdempotencyCache, cacheKey)
		c.Set(ctxIdempotencyLock, lockKey)
		c.Next()
	}
}

func CacheIdempotentResponse(c *gin.Context, rdb *redis.Client, payload any) {
	cacheKey := c.GetString(ctxIdempotencyCache)
	if rdb == nil || cacheKey == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = rdb.Set(c.Request.Context(), cacheKey, data, idempotencyCacheTTL).Err()
}

func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	lockKey := c.GetString(ctxIdempotencyLock)
	if rdb == nil || lockKey == "" {
		return
	}
	_ = rdb.Del(c.Request.Context(), lockKey).Err()
}
