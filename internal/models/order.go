package models

import (
	"github.com/google/uuid"
)

// Order statuses. Transitions out of pending are owned by the payment webhook.
const (
	OrderStatusPending = "pending"
	OrderStatusSuccess = "success"
	OrderStatusFailed  = "failed"
)

// Purchasable item kinds an order line may reference. Exactly one kind and one
// id per line, enforced by the shape of OrderItem rather than by nullable
// foreign-key columns.
const (
	ItemKindCourse     = "course"
	ItemKindTestSeries = "test_series"
	ItemKindVideo      = "video"
)

type Order struct {
	BaseModel
	UserID      uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User        *User       `json:"user,omitempty"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID  uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ItemType string    `json:"item_type"`
	ItemID   uuid.UUID `gorm:"type:uuid" json:"item_id"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// ValidItemKind reports whether kind names a purchasable reference type.
func ValidItemKind(kind string) bool {
	switch kind {
	case ItemKindCourse, ItemKindTestSeries, ItemKindVideo:
		return true
	}
	return false
}
