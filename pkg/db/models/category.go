package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	NameBN        string    `gorm:"column:name_bn" json:"name_bn"`
	Description   string    `gorm:"column:description" json:"description"`
	DescriptionBN string    `gorm:"column:description_bn" json:"description_bn"`
	ImageURL      *string   `gorm:"column:image_url" json:"image_url"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
