package themes

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type memoryLockStore struct {
	values map[string]string
	sets   int
}

func newMemoryLockStore() *memoryLockStore {
	return &memoryLockStore{values: map[string]string{}}
}

func (s *memoryLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, held := s.values[key]; held {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *memoryLockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	s.sets++
	return nil
}

func (s *memoryLockStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *memoryLockStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockSingleHolder(t *testing.T) {
	t.Parallel()

	store := newMemoryLockStore()
	ctx := context.Background()

	first, err := NewRedisLock(store, "gk:lock:theme-poller", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	second, err := NewRedisLock(store, "gk:lock:theme-poller", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	ok, err := first.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("first acquire should win: ok=%v err=%v", ok, err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil || ok {
		t.Fatalf("second acquire should lose while held: ok=%v err=%v", ok, err)
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("released lock should be claimable: ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReacquireRefreshesClaim(t *testing.T) {
	t.Parallel()

	store := newMemoryLockStore()
	ctx := context.Background()

	lock, err := NewRedisLock(store, "gk:lock:theme-poller", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	if ok, err := lock.Acquire(ctx); err != nil || !ok {
		t.Fatalf("acquire: ok=%v err=%v", ok, err)
	}
	if ok, err := lock.Acquire(ctx); err != nil || !ok {
		t.Fatalf("holder should re-acquire its own lock: ok=%v err=%v", ok, err)
	}
	if store.sets != 1 {
		t.Fatalf("re-acquire should refresh the TTL once, refreshed %d times", store.sets)
	}
}

func TestRedisLockRecontendsAfterExpiry(t *testing.T) {
	t.Parallel()

	store := newMemoryLockStore()
	ctx := context.Background()

	lock, err := NewRedisLock(store, "gk:lock:theme-poller", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("initial acquire should win")
	}

	// Simulate TTL expiry followed by another instance moving in.
	delete(store.values, "gk:lock:theme-poller")
	store.values["gk:lock:theme-poller"] = "someone-else"

	ok, err := lock.Acquire(ctx)
	if err != nil || ok {
		t.Fatalf("expired holder must not steal the new claim: ok=%v err=%v", ok, err)
	}
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release after losing the lock: %v", err)
	}
	if store.values["gk:lock:theme-poller"] != "someone-else" {
		t.Fatal("release must not remove another instance's claim")
	}
}
