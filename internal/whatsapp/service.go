package whatsapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsInput is the admin payload for the WhatsApp configuration.
type SettingsInput struct {
	PhoneNumber          string `json:"phone_number" validate:"required,numeric,min=8,max=15"`
	IsEnabled            *bool  `json:"is_enabled"`
	WelcomeMessage       string `json:"welcome_message"`
	OrderMessageTemplate string `json:"order_message_template"`
}

// Service reads and writes the singleton WhatsApp settings row and
// composes outgoing messages.
type Service struct {
	dbh      *gorm.DB
	cfg      config.WhatsAppConfig
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the WhatsApp service.
func NewService(dbh *gorm.DB, cfg config.WhatsAppConfig, logg *logger.Logger) (*Service, error) {
	if dbh == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		dbh:      dbh,
		cfg:      cfg,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

// Settings returns the effective WhatsApp configuration. When the row
// or even the table is missing the built-in defaults apply, so the
// storefront chat button keeps working on a half-provisioned database.
func (s *Service) Settings(ctx context.Context) (*models.WhatsAppSettings, error) {
	var row models.WhatsAppSettings
	err := s.dbh.WithContext(ctx).Order("created_at ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || db.IsRelationMissing(err) {
			defaults := s.defaults()
			return &defaults, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load whatsapp settings")
	}
	if row.PhoneNumber == "" {
		row.PhoneNumber = s.cfg.DefaultPhone
	}
	if row.WelcomeMessage == "" {
		row.WelcomeMessage = DefaultWelcomeMessage
	}
	if row.OrderMessageTemplate == "" {
		row.OrderMessageTemplate = DefaultOrderTemplate
	}
	return &row, nil
}

// UpdateSettings validates and upserts the singleton settings row.
func (s *Service) UpdateSettings(ctx context.Context, input SettingsInput) (*models.WhatsAppSettings, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid whatsapp settings")
	}

	enabled := true
	if input.IsEnabled != nil {
		enabled = *input.IsEnabled
	}

	var row models.WhatsAppSettings
	err := s.dbh.WithContext(ctx).Order("created_at ASC").First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load whatsapp settings")
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.PhoneNumber = input.PhoneNumber
	row.IsEnabled = enabled
	row.WelcomeMessage = input.WelcomeMessage
	row.OrderMessageTemplate = input.OrderMessageTemplate

	if err := s.dbh.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save whatsapp settings")
	}
	return &row, nil
}

// ChatLink returns the wa.me link that opens a product inquiry chat.
func (s *Service) ChatLink(ctx context.Context) (string, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return "", err
	}
	if !settings.IsEnabled {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "whatsapp ordering is disabled")
	}
	return DeepLink(settings.PhoneNumber, settings.WelcomeMessage), nil
}

// OrderLink composes the order message and returns both the message and
// its wa.me link.
func (s *Service) OrderLink(ctx context.Context, input OrderMessageInput) (message, link string, err error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return "", "", err
	}
	if !settings.IsEnabled {
		return "", "", pkgerrors.New(pkgerrors.CodeStateConflict, "whatsapp ordering is disabled")
	}
	message = RenderOrderMessage(settings.OrderMessageTemplate, input)
	return message, DeepLink(settings.PhoneNumber, message), nil
}

func (s *Service) defaults() models.WhatsAppSettings {
	return models.WhatsAppSettings{
		PhoneNumber:          s.cfg.DefaultPhone,
		IsEnabled:            true,
		WelcomeMessage:       DefaultWelcomeMessage,
		OrderMessageTemplate: DefaultOrderTemplate,
	}
}
