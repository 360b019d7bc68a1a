package themes

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

// Input is the admin payload for creating or updating a theme. Blank
// colors are backfilled from the default palette before validation.
type Input struct {
	ThemeName             string `json:"theme_name" validate:"required,min=1,max=120"`
	PrimaryColor          string `json:"primary_color" validate:"required,hexcolor"`
	PrimaryForeground     string `json:"primary_foreground" validate:"required,hexcolor"`
	SecondaryColor        string `json:"secondary_color" validate:"required,hexcolor"`
	SecondaryForeground   string `json:"secondary_foreground" validate:"required,hexcolor"`
	AccentColor           string `json:"accent_color" validate:"required,hexcolor"`
	AccentForeground      string `json:"accent_foreground" validate:"required,hexcolor"`
	BackgroundColor       string `json:"background_color" validate:"required,hexcolor"`
	ForegroundColor       string `json:"foreground_color" validate:"required,hexcolor"`
	MutedColor            string `json:"muted_color" validate:"required,hexcolor"`
	MutedForeground       string `json:"muted_foreground" validate:"required,hexcolor"`
	BorderColor           string `json:"border_color" validate:"required,hexcolor"`
	InputColor            string `json:"input_color" validate:"required,hexcolor"`
	CardColor             string `json:"card_color" validate:"required,hexcolor"`
	CardForeground        string `json:"card_foreground" validate:"required,hexcolor"`
	DestructiveColor      string `json:"destructive_color" validate:"required,hexcolor"`
	DestructiveForeground string `json:"destructive_foreground" validate:"required,hexcolor"`
	RingColor             string `json:"ring_color" validate:"required,hexcolor"`
}

// Service owns theme lifecycle rules on top of the repository.
type Service struct {
	repo     *Repository
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the theme service.
func NewService(repo *Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("theme repository required")
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

// List returns every saved theme.
func (s *Service) List(ctx context.Context) ([]models.ThemeSetting, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list themes")
	}
	return rows, nil
}

// Get returns one theme by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ThemeSetting, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "theme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load theme")
	}
	return row, nil
}

// GetActive returns the active theme, or nil when none is active. Nil
// is a normal state here, not an error, because the storefront renders
// the built-in palette when no row is active.
func (s *Service) GetActive(ctx context.Context) (*models.ThemeSetting, error) {
	row, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active theme")
	}
	return row, nil
}

// Create validates and persists a new theme for the admin.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, input Input) (*models.ThemeSetting, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator admin id is required")
	}
	applyPaletteDefaults(&input)
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid theme payload")
	}

	row := inputToModel(input)
	row.CreatedBy = createdBy
	created, err := s.repo.Create(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create theme")
	}
	return created, nil
}

// Update validates and overwrites the palette of an existing theme.
// The active flag is untouched; activation has its own path.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.ThemeSetting, error) {
	applyPaletteDefaults(&input)
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid theme payload")
	}

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := inputToModel(input)
	next.ID = row.ID
	next.IsActive = row.IsActive
	next.CreatedBy = row.CreatedBy
	next.CreatedAt = row.CreatedAt

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update theme")
	}
	return updated, nil
}

// Delete removes a theme. The active theme cannot be deleted; the
// storefront must never lose its palette out from under it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if row.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete the active theme; activate another theme first")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete theme")
	}
	return nil
}

// Activate makes the theme the storefront's palette. The flip runs as
// two sequential writes, deactivate everything then activate the
// target. Concurrent activations from two admin sessions can interleave
// and briefly leave zero or two active rows; readers resolve the tie by
// newest updated_at.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*models.ThemeSetting, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.DeactivateAll(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate themes")
	}
	activated, err := s.repo.SetActive(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate theme")
	}
	if !activated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "theme not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "theme_id", id.String()), "theme activated")
	return s.Get(ctx, id)
}

func inputToModel(input Input) models.ThemeSetting {
	return models.ThemeSetting{
		ThemeName:             input.ThemeName,
		PrimaryColor:          input.PrimaryColor,
		PrimaryForeground:     input.PrimaryForeground,
		SecondaryColor:        input.SecondaryColor,
		SecondaryForeground:   input.SecondaryForeground,
		AccentColor:           input.AccentColor,
		AccentForeground:      input.AccentForeground,
		BackgroundColor:       input.BackgroundColor,
		ForegroundColor:       input.ForegroundColor,
		MutedColor:            input.MutedColor,
		MutedForeground:       input.MutedForeground,
		BorderColor:           input.BorderColor,
		InputColor:            input.InputColor,
		CardColor:             input.CardColor,
		CardForeground:        input.CardForeground,
		DestructiveColor:      input.DestructiveColor,
		DestructiveForeground: input.DestructiveForeground,
		RingColor:             input.RingColor,
	}
}
