package checkout

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ghorkotha/ghorkotha-backend/internal/cart"
	"github.com/ghorkotha/ghorkotha-backend/internal/orders"
	"github.com/ghorkotha/ghorkotha-backend/internal/whatsapp"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type stubProducts struct {
	missing map[uuid.UUID]bool
}

func (s stubProducts) Get(_ context.Context, id uuid.UUID, _ bool) (*models.Product, error) {
	if s.missing[id] {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &models.Product{ID: id, IsActive: true}, nil
}

type stubOrders struct {
	created *orders.CreateInput
	err     error
}

func (s *stubOrders) Create(_ context.Context, input orders.CreateInput) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &input
	return &models.Order{ID: uuid.New(), Status: models.OrderStatusPending, WhatsAppMessage: input.WhatsAppMessage}, nil
}

type stubLinks struct{}

func (stubLinks) OrderLink(_ context.Context, input whatsapp.OrderMessageInput) (string, string, error) {
	message := whatsapp.RenderOrderMessage("", input)
	return message, whatsapp.DeepLink("8801738354089", message), nil
}

func newTestSetup(t *testing.T, missing map[uuid.UUID]bool) (*Service, *cart.Store, *stubOrders) {
	t.Helper()

	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	ordersStub := &stubOrders{}
	svc, err := NewService(stubProducts{missing: missing}, ordersStub, stubLinks{}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	store, err := cart.NewStore("checkout-session", cart.NewMemoryPersister(), logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return svc, store, ordersStub
}

func validInput() Input {
	return Input{
		CustomerName:    "রাহিম উদ্দিন",
		CustomerPhone:   "01712345678",
		CustomerAddress: "মিরপুর, ঢাকা",
	}
}

func TestSubmitCreatesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	svc, store, ordersStub := newTestSetup(t, nil)
	ctx := context.Background()

	_, err := store.Add(ctx, cart.Item{ProductID: uuid.New(), Name: "Clay Pot", NameBN: "মাটির হাঁড়ি", Price: 250, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := svc.Submit(ctx, store, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !strings.HasPrefix(result.WhatsAppLink, "https://wa.me/8801738354089?text=") {
		t.Fatalf("unexpected link: %q", result.WhatsAppLink)
	}
	if !strings.Contains(result.Message, "মাটির হাঁড়ি") {
		t.Fatalf("message should carry the Bengali product name:\n%s", result.Message)
	}
	if ordersStub.created == nil || ordersStub.created.WhatsAppMessage != result.Message {
		t.Fatal("order should persist the exact message sent")
	}

	if state := store.Snapshot(); len(state.Items) != 0 {
		t.Fatalf("cart should be cleared after checkout, has %d items", len(state.Items))
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestSetup(t, nil)

	_, err := svc.Submit(context.Background(), store, validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRejectsVanishedProduct(t *testing.T) {
	t.Parallel()

	gone := uuid.New()
	svc, store, _ := newTestSetup(t, map[uuid.UUID]bool{gone: true})
	ctx := context.Background()

	if _, err := store.Add(ctx, cart.Item{ProductID: gone, Name: "Ghost", Price: 10, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.Submit(ctx, store, validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	if state := store.Snapshot(); len(state.Items) != 1 {
		t.Fatal("failed checkout must leave the cart intact")
	}
}

func TestSubmitRejectsBadForm(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestSetup(t, nil)
	ctx := context.Background()
	if _, err := store.Add(ctx, cart.Item{ProductID: uuid.New(), Price: 10, Quantity: 1, Name: "x"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	input := validInput()
	input.CustomerPhone = "123"
	_, err := svc.Submit(ctx, store, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
