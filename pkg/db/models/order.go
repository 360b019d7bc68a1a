package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether the status is one of the known order states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order records a checkout hand-off. The order is considered placed once the
// customer is redirected to WhatsApp; WhatsAppMessage keeps the exact text
// that was sent so support can reconcile conversations later.
type Order struct {
	ID              uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName    string      `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"column:customer_phone;not null" json:"customer_phone"`
	CustomerAddress string      `gorm:"column:customer_address;not null" json:"customer_address"`
	Notes           string      `gorm:"column:notes" json:"notes"`
	TotalAmount     float64     `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	WhatsAppMessage string      `gorm:"column:whatsapp_message" json:"whatsapp_message"`
	Status          OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots a product line at checkout time.
type OrderItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	ProductName  string    `gorm:"column:product_name;not null" json:"product_name"`
	ProductPrice float64   `gorm:"column:product_price;type:numeric(10,2);not null" json:"product_price"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	Subtotal     float64   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }
