package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// LineItemSnapshotVersion tags the snapshot schema so historical orders stay
// interpretable if the product shape changes later.
const LineItemSnapshotVersion = 1

// OrderLineItem captures the frozen priced snapshot of one cart item at
// checkout time. The price fields are copied, never recomputed.
type OrderLineItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID       *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	Name            string          `gorm:"column:name;not null"`
	Metal           enums.Metal     `gorm:"column:metal;not null"`
	Purity          string          `gorm:"column:purity;not null"`
	TotalGrams      decimal.Decimal `gorm:"column:total_grams;type:numeric(10,3);not null"`
	BasePrice       decimal.Decimal `gorm:"column:base_price;type:numeric(14,4);not null"`
	Wastage         decimal.Decimal `gorm:"column:wastage;type:numeric(14,4);not null"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(14,4);not null"`
	GST             decimal.Decimal `gorm:"column:gst;type:numeric(14,4);not null"`
	FinalPrice      int64           `gorm:"column:final_price;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	LineTotal       int64           `gorm:"column:line_total;not null"`
	SnapshotVersion int             `gorm:"column:snapshot_version;not null;default:1"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
