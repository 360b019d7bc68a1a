package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a storefront listing. Bengali fields carry the customer-facing
// copy; the plain fields are the admin/internal names.
type Product struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	NameBN        string         `gorm:"column:name_bn" json:"name_bn"`
	Description   string         `gorm:"column:description" json:"description"`
	DescriptionBN string         `gorm:"column:description_bn" json:"description_bn"`
	Price         float64        `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	OriginalPrice float64        `gorm:"column:original_price;type:numeric(10,2)" json:"original_price"`
	CategoryID    *uuid.UUID     `gorm:"column:category_id;type:uuid" json:"category_id"`
	StockQuantity int            `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured    bool           `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	ImageURL      *string        `gorm:"column:image_url" json:"image_url"`
	ImageURLs     pq.StringArray `gorm:"column:image_urls;type:text[]" json:"image_urls"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
