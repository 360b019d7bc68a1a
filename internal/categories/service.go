package categories

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

// Input is the admin payload for creating or updating a category.
type Input struct {
	Name          string  `json:"name" validate:"required,min=1,max=120"`
	NameBN        string  `json:"name_bn" validate:"max=120"`
	Description   string  `json:"description"`
	DescriptionBN string  `json:"description_bn"`
	ImageURL      *string `json:"image_url" validate:"omitempty,url"`
	IsActive      *bool   `json:"is_active"`
}

// Service owns category lifecycle rules on top of the repository.
type Service struct {
	repo     *Repository
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the category service.
func NewService(repo *Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

// List returns categories visible to the caller.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	rows, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

// Get returns one category by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return row, nil
}

// Create validates and persists a new category.
func (s *Service) Create(ctx context.Context, input Input) (*models.Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category payload")
	}

	row := inputToModel(input)
	created, err := s.repo.Create(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

// Update validates and overwrites an existing category.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category payload")
	}

	row, err := s.Get(ctx, id)
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return updated, nil
}

// Delete removes a category. Categories still carrying products cannot
// be deleted; the products must be moved or removed first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.ProductCount(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("category still has %d products", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func inputToModel(input Input) models.Category {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return models.Category{
		Name:          input.Name,
		NameBN:        input.NameBN,
		Description:   input.Description,
		DescriptionBN: input.DescriptionBN,
		ImageURL:      input.ImageURL,
		IsActive:      active,
	}
}
