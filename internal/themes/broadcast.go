package themes

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/metrics"
	"github.com/ghorkotha/ghorkotha-backend/pkg/redis"
	"github.com/google/uuid"
)

// ChangeTopic is the broadcast topic carrying theme change events.
const ChangeTopic = "theme-changed"

// ChangeEvent announces that the active palette changed. Theme is nil
// when every theme was deactivated.
type ChangeEvent struct {
	Theme      *models.ThemeSetting `json:"theme"`
	SourceID   string               `json:"source_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Transport moves raw broadcast payloads between instances. Delivery is
// at most once; a subscriber that was not listening when an event fired
// never sees it.
type Transport interface {
	Publish(ctx context.Context, payload []byte) error
	Subscribe(ctx context.Context) (<-chan []byte, func(), error)
}

// RedisTransport carries broadcasts over a Redis pub/sub channel.
type RedisTransport struct {
	client *redis.Client
}

// NewRedisTransport builds the transport on the shared Redis client.
func NewRedisTransport(client *redis.Client) *RedisTransport {
	return &RedisTransport{client: client}
}

func (t *RedisTransport) Publish(ctx context.Context, payload []byte) error {
	return t.client.Publish(ctx, t.client.BroadcastChannel(ChangeTopic), payload)
}

func (t *RedisTransport) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	pubsub, err := t.client.Subscribe(ctx, t.client.BroadcastChannel(ChangeTopic))
	if err != nil {
		return nil, nil, err
	}
	out := make(chan []byte)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, func() { _ = pubsub.Close() }, nil
}

// MemoryTransport is an in-process transport for tests and single
// instance deployments without Redis.
type MemoryTransport struct {
	mu   sync.Mutex
	subs map[int]chan []byte
	next int
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{subs: map[int]chan []byte{}}
}

func (t *MemoryTransport) Publish(_ context.Context, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		select {
		case sub <- payload:
		default:
			// Slow subscribers drop events rather than block publishers.
		}
	}
	return nil
}

func (t *MemoryTransport) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 16)
	t.mu.Lock()
	id := t.next
	t.next++
	t.subs[id] = ch
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, cancel, nil
}

// Broadcaster publishes and consumes theme change events, discarding
// events that are stale or that this instance published itself.
type Broadcaster struct {
	transport Transport
	freshness time.Duration
	sourceID  string
	metrics   *metrics.ThemeSyncMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewBroadcaster builds a broadcaster with a unique source identity.
func NewBroadcaster(transport Transport, freshness time.Duration, m *metrics.ThemeSyncMetrics, logg *logger.Logger) (*Broadcaster, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Broadcaster{
		transport: transport,
		freshness: freshness,
		sourceID:  uuid.NewString(),
		metrics:   m,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// SourceID identifies this instance in published events.
func (b *Broadcaster) SourceID() string { return b.sourceID }

// Publish announces the new active theme to every other instance.
func (b *Broadcaster) Publish(ctx context.Context, theme *models.ThemeSetting) error {
	event := ChangeEvent{
		Theme:      theme,
		SourceID:   b.sourceID,
		OccurredAt: b.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode theme change event: %w", err)
	}
	if err := b.transport.Publish(ctx, payload); err != nil {
		return fmt.Errorf("publish theme change event: %w", err)
	}
	b.metrics.IncBroadcast(ChangeTopic)
	return nil
}

// Listen consumes change events until the context ends, invoking the
// handler for every fresh event from another instance. Events older
// than the freshness window arrive too late to be trusted over the next
// poll and are dropped, as are repeat announcements of the theme this
// listener already adopted.
func (b *Broadcaster) Listen(ctx context.Context, handler func(ChangeEvent)) error {
	events, cancel, err := b.transport.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe theme change events: %w", err)
	}
	defer cancel()

	var lastAdopted uuid.UUID
	hasAdopted := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-events:
			if !ok {
				return nil
			}
			var event ChangeEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				b.logg.Warn(ctx, fmt.Sprintf("discarding malformed theme change event: %v", err))
				continue
			}
			if event.SourceID == b.sourceID {
				continue
			}
			if b.now().Sub(event.OccurredAt) > b.freshness {
				b.metrics.IncStaleBroadcast(ChangeTopic)
				continue
			}
			eventID := uuid.Nil
			if event.Theme != nil {
				eventID = event.Theme.ID
			}
			if hasAdopted && eventID == lastAdopted {
				continue
			}
			handler(event)
			lastAdopted = eventID
			hasAdopted = true
		}
	}
}
