package models

import (
	"time"

	"github.com/google/uuid"
)

// ThemeSetting is a named storefront palette. At most one row carries
// is_active = true; activation flips the flag over two writes, so a
// concurrent activation from another admin session can briefly observe
// zero or two active rows.
type ThemeSetting struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ThemeName string    `gorm:"column:theme_name;not null" json:"theme_name"`
	IsActive  bool      `gorm:"column:is_active;not null;default:false" json:"is_active"`

	PrimaryColor          string `gorm:"column:primary_color;not null" json:"primary_color"`
	PrimaryForeground     string `gorm:"column:primary_foreground;not null" json:"primary_foreground"`
	SecondaryColor        string `gorm:"column:secondary_color;not null" json:"secondary_color"`
	SecondaryForeground   string `gorm:"column:secondary_foreground;not null" json:"secondary_foreground"`
	AccentColor           string `gorm:"column:accent_color;not null" json:"accent_color"`
	AccentForeground      string `gorm:"column:accent_foreground;not null" json:"accent_foreground"`
	BackgroundColor       string `gorm:"column:background_color;not null" json:"background_color"`
	ForegroundColor       string `gorm:"column:foreground_color;not null" json:"foreground_color"`
	MutedColor            string `gorm:"column:muted_color;not null" json:"muted_color"`
	MutedForeground       string `gorm:"column:muted_foreground;not null" json:"muted_foreground"`
	BorderColor           string `gorm:"column:border_color;not null" json:"border_color"`
	InputColor            string `gorm:"column:input_color;not null" json:"input_color"`
	CardColor             string `gorm:"column:card_color;not null" json:"card_color"`
	CardForeground        string `gorm:"column:card_foreground;not null" json:"card_foreground"`
	DestructiveColor      string `gorm:"column:destructive_color;not null" json:"destructive_color"`
	DestructiveForeground string `gorm:"column:destructive_foreground;not null" json:"destructive_foreground"`
	RingColor             string `gorm:"column:ring_color;not null" json:"ring_color"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table the admin tooling knows.
func (ThemeSetting) TableName() string { return "theme_settings" }
