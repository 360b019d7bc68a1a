package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/google/uuid"
)

// Persister saves and restores serialized cart snapshots per session.
type Persister interface {
	Save(ctx context.Context, sessionID string, payload []byte) error
	Load(ctx context.Context, sessionID string) ([]byte, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store holds the live cart for one shopper session and writes every
// mutation through to the persister. Reads never touch the persister
// after the initial restore.
type Store struct {
	mu        sync.Mutex
	sessionID string
	state     State
	persister Persister
	logg      *logger.Logger
	restored  bool
}

// NewStore builds a cart store for the session. The cart starts empty
// until Restore runs.
func NewStore(sessionID string, persister Persister, logg *logger.Logger) (*Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}
	if persister == nil {
		return nil, fmt.Errorf("persister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{
		sessionID: sessionID,
		state:     EmptyState(),
		persister: persister,
		logg:      logg,
	}, nil
}

// Restore loads the persisted snapshot for the session. A missing
// snapshot leaves the cart empty; a corrupt one is logged and discarded
// rather than surfaced, so a bad payload can never brick the cart.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, found, err := s.persister.Load(ctx, s.sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}
	s.restored = true
	if !found {
		s.state = EmptyState()
		return nil
	}

	var snapshot State
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("discarding corrupt cart snapshot for session %s: %v", s.sessionID, err))
		s.state = EmptyState()
		return nil
	}

	s.state = load(snapshot.Items)
	return nil
}

// Snapshot returns a copy of the current cart state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Add merges the item into the cart and persists the result.
func (s *Store) Add(ctx context.Context, item Item) (State, error) {
	if item.ProductID == uuid.Nil {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return s.mutate(ctx, func(current State) State {
		return add(current, item)
	})
}

// Remove drops the product's line from the cart and persists the result.
func (s *Store) Remove(ctx context.Context, productID uuid.UUID) (State, error) {
	return s.mutate(ctx, func(current State) State {
		return remove(current, productID)
	})
}

// SetQuantity overwrites a line's quantity and persists the result.
// Quantities at or below zero remove the line.
func (s *Store) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (State, error) {
	return s.mutate(ctx, func(current State) State {
		return setQuantity(current, productID, quantity)
	})
}

// Clear empties the cart and persists the empty snapshot.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, func(State) State {
		return EmptyState()
	})
}

// Load replaces the cart contents wholesale and persists the result.
func (s *Store) Load(ctx context.Context, items []Item) (State, error) {
	return s.mutate(ctx, func(State) State {
		return load(items)
	})
}

func (s *Store) mutate(ctx context.Context, apply func(State) State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := apply(s.state)
	payload, err := json.Marshal(next)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.persister.Save(ctx, s.sessionID, payload); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	s.state = next
	return copyState(next), nil
}

func copyState(s State) State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}
