package models

import (
	"time"

	"github.com/google/uuid"
)

// WhatsAppSettings is a singleton row; readers fall back to built-in
// defaults when the table or row is absent.
type WhatsAppSettings struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PhoneNumber          string    `gorm:"column:phone_number;not null" json:"phone_number"`
	IsEnabled            bool      `gorm:"column:is_enabled;not null;default:true" json:"is_enabled"`
	WelcomeMessage       string    `gorm:"column:welcome_message" json:"welcome_message"`
	OrderMessageTemplate string    `gorm:"column:order_message_template" json:"order_message_template"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WhatsAppSettings) TableName() string { return "whatsapp_settings" }
