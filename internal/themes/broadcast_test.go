package themes

import (
	"context"
	"testing"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	"github.com/ghorkotha/ghorkotha-backend/pkg/metrics"
	"github.com/google/uuid"
)

func newTestBroadcaster(t *testing.T, transport Transport) *Broadcaster {
	t.Helper()
	b, err := NewBroadcaster(transport, 10*time.Second, metrics.NewThemeSyncMetrics(nil), themesTestLogger())
	if err != nil {
		t.Fatalf("new broadcaster: %v", err)
	}
	return b
}

func TestBroadcasterDeliversToOtherInstances(t *testing.T) {
	t.Parallel()

	transport := NewMemoryTransport()
	publisher := newTestBroadcaster(t, transport)
	subscriber := newTestBroadcaster(t, transport)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan ChangeEvent, 1)
	go func() {
		_ = subscriber.Listen(ctx, func(event ChangeEvent) {
			received <- event
		})
	}()

	// Give the listener a beat to subscribe before publishing.
	time.Sleep(50 * time.Millisecond)

	theme := DefaultPalette()
	theme.ID = uuid.New()
	if err := publisher.Publish(ctx, &theme); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-received:
		if event.Theme == nil || event.Theme.ID != theme.ID {
			t.Fatalf("unexpected event payload: %+v", event)
		}
		if event.SourceID != publisher.SourceID() {
			t.Fatalf("expected publisher source id, got %s", event.SourceID)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestBroadcasterIgnoresOwnEvents(t *testing.T) {
	t.Parallel()

	transport := NewMemoryTransport()
	node := newTestBroadcaster(t, transport)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	received := make(chan ChangeEvent, 1)
	go func() {
		_ = node.Listen(ctx, func(event ChangeEvent) {
			received <- event
		})
	}()
	time.Sleep(50 * time.Millisecond)

	if err := node.Publish(ctx, nil); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("instance should not observe its own event: %+v", event)
	case <-ctx.Done():
	}
}

func TestBroadcasterDropsRepeatAnnouncements(t *testing.T) {
	t.Parallel()

	transport := NewMemoryTransport()
	publisher := newTestBroadcaster(t, transport)
	subscriber := newTestBroadcaster(t, transport)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan ChangeEvent, 4)
	go func() {
		_ = subscriber.Listen(ctx, func(event ChangeEvent) {
			received <- event
		})
	}()
	time.Sleep(50 * time.Millisecond)

	theme := DefaultPalette()
	theme.ID = uuid.New()
	replacement := DefaultPalette()
	replacement.ID = uuid.New()

	// The same activation announced twice, then an actual change.
	for _, current := range []*models.ThemeSetting{&theme, &theme, &replacement} {
		if err := publisher.Publish(ctx, current); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	time.Sleep(100 * time.Millisecond)

	if got := len(received); got != 2 {
		t.Fatalf("expected two adoptions, got %d", got)
	}
	first, second := <-received, <-received
	if first.Theme.ID != theme.ID || second.Theme.ID != replacement.ID {
		t.Fatalf("unexpected adoption order: %+v then %+v", first, second)
	}
}

func TestBroadcasterDropsStaleEvents(t *testing.T) {
	t.Parallel()

	transport := NewMemoryTransport()
	publisher := newTestBroadcaster(t, transport)
	subscriber := newTestBroadcaster(t, transport)

	// The publisher thinks events happened well outside the freshness
	// window.
	publisher.now = func() time.Time { return time.Now().Add(-time.Minute) }

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	received := make(chan ChangeEvent, 1)
	go func() {
		_ = subscriber.Listen(ctx, func(event ChangeEvent) {
			received <- event
		})
	}()
	time.Sleep(50 * time.Millisecond)

	if err := publisher.Publish(ctx, nil); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("stale event should be dropped: %+v", event)
	case <-ctx.Done():
	}
}
