package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Input is the admin payload for creating or updating a product.
type Input struct {
	Name          string     `json:"name" validate:"required,min=1,max=200"`
	NameBN        string     `json:"name_bn" validate:"max=200"`
	Description   string     `json:"description"`
	DescriptionBN string     `json:"description_bn"`
	Price         float64    `json:"price" validate:"gte=0"`
	OriginalPrice float64    `json:"original_price" validate:"gte=0"`
	CategoryID    *uuid.UUID `json:"category_id"`
	StockQuantity int        `json:"stock_quantity" validate:"gte=0"`
	IsActive      *bool      `json:"is_active"`
	IsFeatured    bool       `json:"is_featured"`
	ImageURL      *string    `json:"image_url" validate:"omitempty,url"`
	ImageURLs     []string   `json:"image_urls" validate:"dive,url"`
}

type categoryChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service owns product lifecycle rules on top of the repository.
type Service struct {
	repo       *Repository
	categories categoryChecker
	validate   *validator.Validate
	logg       *logger.Logger
}

// NewService builds the product service.
func NewService(repo *Repository, categories categoryChecker, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		repo:       repo,
		categories: categories,
		validate:   validator.New(),
		logg:       logg,
	}, nil
}

// List returns a storefront page of products.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	page, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return page, nil
}

// Get returns one product. Inactive products resolve only when asked
// for explicitly by an admin.
func (s *Service) Get(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !row.IsActive && !includeInactive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return row, nil
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, input Input) (*models.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	row := inputToModel(input)
	created, err := s.repo.Create(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

// Update validates and overwrites an existing product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	row, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	next := inputToModel(input)
	next.ID = row.ID
	next.CreatedAt = row.CreatedAt
	if input.IsActive == nil {
		next.IsActive = row.IsActive
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

// Delete removes a product. Products referenced by order snapshots are
// deactivated instead so order history keeps resolving.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id, true); err != nil {
		return err
	}

	referenced, err := s.repo.IsReferencedByOrders(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product references")
	}
	if referenced {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
		}
		s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product referenced by orders, deactivated instead of deleted")
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *Service) validateInput(ctx context.Context, input Input) error {
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product payload")
	}
	if input.CategoryID != nil {
		exists, err := s.categories.Exists(ctx, *input.CategoryID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
	}
	return nil
}

func inputToModel(input Input) models.Product {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return models.Product{
		Name:          input.Name,
		NameBN:        input.NameBN,
		Description:   input.Description,
		DescriptionBN: input.DescriptionBN,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		CategoryID:    input.CategoryID,
		StockQuantity: input.StockQuantity,
		IsActive:      active,
		IsFeatured:    input.IsFeatured,
		ImageURL:      input.ImageURL,
		ImageURLs:     pq.StringArray(input.ImageURLs),
	}
}
