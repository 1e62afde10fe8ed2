package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// Order is an immutable checkout record; Status is the only field mutated
// after creation. Reference is the customer-facing "AL-XXXXXX" id.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference    string            `gorm:"column:reference;not null;uniqueIndex:idx_orders_reference"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Address      string            `gorm:"column:address;not null"`
	Total        int64             `gorm:"column:total;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'Pending'"`
	Items        []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
