package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// MetalRate is the administratively maintained price per gram for one
// (metal, purity) pair. Rows are upserted in place and never deleted.
type MetalRate struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Metal        enums.Metal     `gorm:"column:metal;not null;uniqueIndex:idx_metal_rates_key"`
	Purity       string          `gorm:"column:purity;not null;uniqueIndex:idx_metal_rates_key"`
	PricePerGram decimal.Decimal `gorm:"column:price_per_gram;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}
