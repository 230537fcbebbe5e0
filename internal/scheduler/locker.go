package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker claims a fire time so that only one worker instance runs it.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type redisLocker struct {
	rdb   *redis.Client
	owner string
}

// NewRedisLocker claims keys with SET NX. Claims are never released; they
// expire after their TTL.
func NewRedisLocker(rdb *redis.Client, owner string) Locker {
	return &redisLocker{rdb: rdb, owner: owner}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, key, l.owner, ttl).Result()
}
