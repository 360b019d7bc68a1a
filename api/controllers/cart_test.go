package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	cartsvc "github.com/ghorkotha/ghorkotha-backend/internal/cart"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

func cartTestRouter(t *testing.T) (*chi.Mux, *cartsvc.Store) {
	t.Helper()

	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	store, err := cartsvc.NewStore("session-1", cartsvc.NewMemoryPersister(), logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(cartsvc.WithStore(req.Context(), store)))
		})
	})
	r.Get("/api/cart", CartFetch(logg))
	r.Put("/api/cart/items/{productId}", CartSetQuantity(logg))
	r.Delete("/api/cart/items/{productId}", CartRemoveItem(logg))
	r.Delete("/api/cart", CartClear(logg))
	return r, store
}

func decodeCartState(t *testing.T, body io.Reader) cartsvc.State {
	t.Helper()
	var envelope struct {
		Data cartsvc.State `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchEmpty(t *testing.T) {
	router, _ := cartTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	state := decodeCartState(t, resp.Body)
	if state.ItemCount != 0 || len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestCartSetQuantityUpdatesLine(t *testing.T) {
	router, store := cartTestRouter(t)

	productID := uuid.New()
	if _, err := store.Add(context.Background(), cartsvc.Item{ProductID: productID, Name: "clay pot", Price: 250, Quantity: 1}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/"+productID.String(), strings.NewReader(`{"quantity":3}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	state := decodeCartState(t, resp.Body)
	if state.ItemCount != 3 || state.Total != 750 {
		t.Fatalf("unexpected state after quantity update: %+v", state)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	router, store := cartTestRouter(t)

	productID := uuid.New()
	if _, err := store.Add(context.Background(), cartsvc.Item{ProductID: productID, Name: "clay pot", Price: 250, Quantity: 2}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/"+productID.String(), strings.NewReader(`{"quantity":0}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	state := decodeCartState(t, resp.Body)
	if len(state.Items) != 0 {
		t.Fatalf("expected line removed, got %+v", state)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	router, store := cartTestRouter(t)

	first := uuid.New()
	second := uuid.New()
	ctx := context.Background()
	if _, err := store.Add(ctx, cartsvc.Item{ProductID: first, Name: "clay pot", Price: 250, Quantity: 1}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := store.Add(ctx, cartsvc.Item{ProductID: second, Name: "jute rug", Price: 900, Quantity: 1}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/"+first.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	state := decodeCartState(t, resp.Body)
	if len(state.Items) != 1 || state.Items[0].ProductID != second {
		t.Fatalf("expected only the second line to remain, got %+v", state)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	state = decodeCartState(t, resp.Body)
	if len(state.Items) != 0 || state.Total != 0 {
		t.Fatalf("expected cleared cart, got %+v", state)
	}
}

func TestCartSetQuantityRejectsBadProductID(t *testing.T) {
	router, _ := cartTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/not-a-uuid", strings.NewReader(`{"quantity":1}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
