package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineInput is one resolved order line, priced at checkout time.
type LineInput struct {
	ProductID uuid.UUID
	Name      string
	Price     float64
	Quantity  int
}

// CreateInput captures a checkout hand-off ready to persist.
type CreateInput struct {
	CustomerName    string `validate:"required,min=2,max=120"`
	CustomerPhone   string `validate:"required,min=8,max=20"`
	CustomerAddress string `validate:"required,min=4"`
	Notes           string
	WhatsAppMessage string
	Lines           []LineInput `validate:"required,min=1,dive"`
}

// Service owns order lifecycle rules on top of the repository.
type Service struct {
	repo     *Repository
	tx       txRunner
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the order service.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		repo:     repo,
		tx:       tx,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

// Create persists the order and its line snapshots atomically.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order payload")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line quantity must be positive")
		}
		subtotal := line.Price * float64(line.Quantity)
		total += subtotal
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			ProductPrice: line.Price,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
	}

	order := &models.Order{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		TotalAmount:     total,
		WhatsAppMessage: input.WhatsAppMessage,
		Status:          models.OrderStatusPending,
		Items:           items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order created")
	return order, nil
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return row, nil
}

// List returns an admin page of orders.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	page, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return page, nil
}

// UpdateStatus moves the order to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, id)
}
