package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/google/uuid"
)

// Sessions hands out one Store per shopper session, restoring persisted
// snapshots lazily on first use.
type Sessions struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
	logg      *logger.Logger
}

// NewSessions builds the session registry on the shared persister.
func NewSessions(persister Persister, logg *logger.Logger) (*Sessions, error) {
	if persister == nil {
		return nil, fmt.Errorf("persister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Sessions{
		stores:    map[string]*Store{},
		persister: persister,
		logg:      logg,
	}, nil
}

// NewSessionID mints an opaque session identifier for a fresh shopper.
func NewSessionID() string {
	return uuid.NewString()
}

// StoreFor returns the live store for the session, creating and
// restoring it on first access.
func (s *Sessions) StoreFor(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	s.mu.Lock()
	store, ok := s.stores[sessionID]
	if !ok {
		var err error
		store, err = NewStore(sessionID, s.persister, s.logg)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.stores[sessionID] = store
	}
	s.mu.Unlock()

	if !ok {
		if err := store.Restore(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Drop forgets the in-process store and deletes the persisted snapshot.
func (s *Sessions) Drop(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.stores, sessionID)
	s.mu.Unlock()
	return s.persister.Delete(ctx, sessionID)
}
