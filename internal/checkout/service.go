package checkout

import (
	"context"
	"fmt"

	"github.com/ghorkotha/ghorkotha-backend/internal/cart"
	"github.com/ghorkotha/ghorkotha-backend/internal/orders"
	"github.com/ghorkotha/ghorkotha-backend/internal/whatsapp"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Input is the customer's checkout form.
type Input struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone   string `json:"customer_phone" validate:"required,min=8,max=20"`
	CustomerAddress string `json:"customer_address" validate:"required,min=4"`
	Notes           string `json:"notes"`
}

// Result is what the storefront needs to finish the hand-off: the saved
// order plus the prefilled WhatsApp link to redirect the customer to.
type Result struct {
	Order        *models.Order `json:"order"`
	Message      string        `json:"message"`
	WhatsAppLink string        `json:"whatsapp_link"`
}

type productGetter interface {
	Get(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
}

type orderCreator interface {
	Create(ctx context.Context, input orders.CreateInput) (*models.Order, error)
}

type linkComposer interface {
	OrderLink(ctx context.Context, input whatsapp.OrderMessageInput) (message, link string, err error)
}

// Service turns a cart into a pending order and a WhatsApp hand-off.
type Service struct {
	products productGetter
	orders   orderCreator
	links    linkComposer
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the checkout service.
func NewService(products productGetter, orderSvc orderCreator, links linkComposer, logg *logger.Logger) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if links == nil {
		return nil, fmt.Errorf("link composer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		products: products,
		orders:   orderSvc,
		links:    links,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

// Submit validates the cart, composes the order message, persists the
// order, and clears the cart. The cart is cleared only after the order
// is safely stored; a failed order leaves the cart intact for a retry.
func (s *Service) Submit(ctx context.Context, store *cart.Store, input Input) (*Result, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout form")
	}

	snapshot := store.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]orders.LineInput, 0, len(snapshot.Items))
	messageLines := make([]whatsapp.OrderLine, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		if _, err := s.products.Get(ctx, item.ProductID, false); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%q is no longer available", displayName(item)))
			}
			return nil, err
		}
		lines = append(lines, orders.LineInput{
			ProductID: item.ProductID,
			Name:      displayName(item),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
		messageLines = append(messageLines, whatsapp.OrderLine{
			Name:     displayName(item),
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		})
	}

	message, link, err := s.links.OrderLink(ctx, whatsapp.OrderMessageInput{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		Lines:           messageLines,
		TotalAmount:     snapshot.Total,
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, orders.CreateInput{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		WhatsAppMessage: message,
		Lines:           lines,
	})
	if err != nil {
		return nil, err
	}

	if _, err := store.Clear(ctx); err != nil {
		// The order exists either way; losing the clear only leaves a
		// stale cart behind.
		s.logg.Error(ctx, "clear cart after checkout", err)
	}

	return &Result{Order: order, Message: message, WhatsAppLink: link}, nil
}

// Customers see the Bengali name when one exists.
func displayName(item cart.Item) string {
	if item.NameBN != "" {
		return item.NameBN
	}
	return item.Name
}
