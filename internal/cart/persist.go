package cart

import (
	"context"
	"sync"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/redis"
)

// RedisPersister keeps cart snapshots in Redis under the session's cart
// key. A zero TTL keeps snapshots until the session clears them.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister builds a persister on the shared Redis client.
func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, payload []byte) error {
	return p.client.Set(ctx, p.client.CartKey(sessionID), payload, p.ttl)
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	value, err := p.client.Get(ctx, p.client.CartKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.client.Del(ctx, p.client.CartKey(sessionID))
}

// MemoryPersister is an in-process persister used in tests and as a
// fallback when Redis is disabled.
type MemoryPersister struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snapshots: map[string][]byte{}}
}

func (p *MemoryPersister) Save(_ context.Context, sessionID string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	p.snapshots[sessionID] = stored
	return nil
}

func (p *MemoryPersister) Load(_ context.Context, sessionID string) ([]byte, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	payload, ok := p.snapshots[sessionID]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (p *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.snapshots, sessionID)
	return nil
}

// Seed writes a raw payload directly, bypassing Save's copy semantics.
func (p *MemoryPersister) Seed(sessionID string, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots[sessionID] = payload
}
