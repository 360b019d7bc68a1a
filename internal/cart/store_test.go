package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
}

func newTestStore(t *testing.T, persister Persister) *Store {
	t.Helper()
	store, err := NewStore("session-1", persister, testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return store
}

func TestStorePersistsAfterEveryMutation(t *testing.T) {
	t.Parallel()

	persister := NewMemoryPersister()
	store := newTestStore(t, persister)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := store.Add(ctx, Item{ProductID: productID, Name: "Bamboo Tray", Price: 150, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	payload, found, err := persister.Load(ctx, "session-1")
	if err != nil || !found {
		t.Fatalf("expected persisted snapshot, found=%v err=%v", found, err)
	}
	var snapshot State
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snapshot.Total != 300 || snapshot.ItemCount != 2 {
		t.Fatalf("unexpected snapshot aggregates: %+v", snapshot)
	}
}

func TestStoreRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	persister := NewMemoryPersister()
	first := newTestStore(t, persister)
	ctx := context.Background()

	if _, err := first.Add(ctx, Item{ProductID: uuid.New(), Price: 100, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := first.Add(ctx, Item{ProductID: uuid.New(), Price: 100, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	second := newTestStore(t, persister)
	state := second.Snapshot()
	if state.Total != 300 || state.ItemCount != 3 {
		t.Fatalf("restored state mismatch: %+v", state)
	}
}

func TestStoreRestoreDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	persister := NewMemoryPersister()
	persister.Seed("session-1", []byte("{not json"))

	store := newTestStore(t, persister)
	state := store.Snapshot()
	if len(state.Items) != 0 || state.Total != 0 {
		t.Fatalf("corrupt snapshot should yield empty cart, got %+v", state)
	}
}

func TestStoreClearEmptiesAndPersists(t *testing.T) {
	t.Parallel()

	persister := NewMemoryPersister()
	store := newTestStore(t, persister)
	ctx := context.Background()

	if _, err := store.Add(ctx, Item{ProductID: uuid.New(), Price: 50, Quantity: 4}); err != nil {
		t.Fatalf("add: %v", err)
	}
	state, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(state.Items) != 0 || state.Total != 0 || state.ItemCount != 0 {
		t.Fatalf("clear left residue: %+v", state)
	}

	payload, found, _ := persister.Load(ctx, "session-1")
	if !found {
		t.Fatal("cleared snapshot should still be persisted")
	}
	var snapshot State
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snapshot.ItemCount != 0 {
		t.Fatalf("persisted snapshot not cleared: %+v", snapshot)
	}
}

func TestStoreAddDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, NewMemoryPersister())
	state, err := store.Add(context.Background(), Item{ProductID: uuid.New(), Price: 75})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if state.ItemCount != 1 {
		t.Fatalf("expected defaulted quantity 1, got %d", state.ItemCount)
	}
}

func TestStoreAddRejectsMissingProductID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, NewMemoryPersister())
	_, err := store.Add(context.Background(), Item{Price: 75, Quantity: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreMutationFailsWhenPersistFails(t *testing.T) {
	t.Parallel()

	persister := &failingPersister{}
	store, err := NewStore("session-1", persister, testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Add(context.Background(), Item{ProductID: uuid.New(), Price: 10, Quantity: 1})
	if err == nil {
		t.Fatal("expected persist failure to surface")
	}
	if state := store.Snapshot(); len(state.Items) != 0 {
		t.Fatal("failed persist must not commit the mutation")
	}
}

func TestStoreFromPanicsOutsideProvider(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when no store is attached")
		}
	}()
	StoreFrom(context.Background())
}

func TestStoreFromReturnsAttachedStore(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, NewMemoryPersister())
	ctx := WithStore(context.Background(), store)
	if got := StoreFrom(ctx); got != store {
		t.Fatal("expected attached store back")
	}
}

type failingPersister struct{}

func (failingPersister) Save(context.Context, string, []byte) error {
	return errors.New("backend down")
}
func (failingPersister) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}
func (failingPersister) Delete(context.Context, string) error { return nil }
