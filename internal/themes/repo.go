package themes

import (
	"context"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates theme setting persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns all themes, newest first.
func (r *Repository) List(ctx context.Context) ([]models.ThemeSetting, error) {
	var rows []models.ThemeSetting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns one theme by primary key.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ThemeSetting, error) {
	var row models.ThemeSetting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetActive returns the currently active theme. The newest active row
// wins if the two-write activation ever leaves more than one behind.
func (r *Repository) GetActive(ctx context.Context) (*models.ThemeSetting, error) {
	var row models.ThemeSetting
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the provided theme, minting the id client-side so the
// caller can reference the row immediately.
func (r *Repository) Create(ctx context.Context, row *models.ThemeSetting) (*models.ThemeSetting, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided theme.
func (r *Repository) Update(ctx context.Context, row *models.ThemeSetting) (*models.ThemeSetting, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the theme by primary key.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ThemeSetting{}).Error
}

// DeactivateAll clears the active flag on every theme.
func (r *Repository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.ThemeSetting{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// SetActive flips the active flag on for one theme and reports whether
// the row existed.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ThemeSetting{}).
		Where("id = ?", id).
		Update("is_active", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
