package cart

import "context"

type ctxKey struct{}

// WithStore attaches the session's cart store to the request context.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, store)
}

// StoreFrom returns the cart store from the context. It panics when no
// store is attached: cart handlers must always run inside the session
// middleware, and a missing store is a wiring bug, not a runtime
// condition to tolerate.
func StoreFrom(ctx context.Context) *Store {
	store, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || store == nil {
		panic("cart: no store in context; handler mounted outside the cart session middleware")
	}
	return store
}

// StoreFromIfPresent returns the store without panicking, for callers
// that legitimately run outside the session middleware.
func StoreFromIfPresent(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(ctxKey{}).(*Store)
	return store, ok && store != nil
}
