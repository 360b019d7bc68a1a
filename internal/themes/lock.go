package themes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/redis"
	"github.com/google/uuid"
)

// PollerLockName names the coordination lock shared by poller instances.
const PollerLockName = "theme-poller"

const defaultLeaderTTL = 30 * time.Second

// Lock elects which instance runs the poll loop so a deployment with
// several replicas hits the database once per tick, not once per
// replica. Acquire is re-entrant for the current holder and refreshes
// its claim.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// lockStore defines the operations RedisLock needs.
type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLock implements Lock with SETNX + TTL. The TTL bounds how long a
// crashed holder blocks the survivors.
type RedisLock struct {
	store lockStore
	key   string
	ttl   time.Duration
	owner string
}

// NewRedisLock constructs a Redis-backed poller lock.
func NewRedisLock(store lockStore, key string, ttl time.Duration) (*RedisLock, error) {
	if store == nil {
		return nil, errors.New("redis store required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = defaultLeaderTTL
	}
	return &RedisLock{store: store, key: key, ttl: ttl}, nil
}

// Acquire claims the lock or refreshes an existing claim. It reports
// false when another instance holds it.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	if l.owner != "" {
		holder, err := l.store.Get(ctx, l.key)
		switch {
		case err == nil && holder == l.owner:
			if err := l.store.Set(ctx, l.key, l.owner, l.ttl); err != nil {
				return false, fmt.Errorf("refresh lock: %w", err)
			}
			return true, nil
		case err != nil && !redis.IsNil(err):
			return false, fmt.Errorf("read lock holder: %w", err)
		}
		// The claim expired or was taken over; contend again from scratch.
		l.owner = ""
	}

	owner := uuid.NewString()
	ok, err := l.store.SetNX(ctx, l.key, owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		l.owner = owner
	}
	return ok, nil
}

// Release frees the lock only while this instance still owns it.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.owner == "" {
		return nil
	}
	holder, err := l.store.Get(ctx, l.key)
	if err != nil {
		if redis.IsNil(err) {
			l.owner = ""
			return nil
		}
		return fmt.Errorf("read lock holder: %w", err)
	}
	if holder != l.owner {
		l.owner = ""
		return nil
	}
	if err := l.store.Del(ctx, l.key); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	l.owner = ""
	return nil
}
