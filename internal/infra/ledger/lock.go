package ledger

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ======================================================
// Redis date lock
// ======================================================

// RedisDateLocker serializes commits per date across replicas. The snapshot
// is read before the commit, so without this two interactions can both see a
// slot free and both write it.
type RedisDateLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisDateLocker(addr string) *RedisDateLocker {
	return &RedisDateLocker{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    15 * time.Second,
		wait:   100 * time.Millisecond,
	}
}

// Lock acquires "cita:lock:<key>" via SETNX, polling until the holder
// releases or its TTL expires. The returned func releases the lock only if
// this caller still holds it.
func (l *RedisDateLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := "cita:lock:" + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.ttl)
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, apperr.External("ledger", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, apperr.Conflict("date is locked by another commit")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.wait):
		}
	}

	release := func() {
		// Compare-and-delete so an expired lock taken over by another
		// replica is not released from here.
		val, err := l.client.Get(context.Background(), lockKey).Result()
		if err == nil && val == token {
			l.client.Del(context.Background(), lockKey)
		}
	}
	return release, nil
}
