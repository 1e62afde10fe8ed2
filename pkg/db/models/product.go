package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// Charges is the per-product charge structure folded into the price formula.
type Charges struct {
	MakingCharge    decimal.Decimal `gorm:"column:making_charge;type:numeric(12,2);not null;default:0"`
	WastagePercent  decimal.Decimal `gorm:"column:wastage_percent;type:numeric(6,3);not null;default:0"`
	PackagingCharge decimal.Decimal `gorm:"column:packaging_charge;type:numeric(12,2);not null;default:0"`
	GSTPercent      decimal.Decimal `gorm:"column:gst_percent;type:numeric(6,3);not null;default:3"`
}

// Product is a catalog piece. Prices are never stored here; they are derived
// from the matching MetalRate on every read.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Category    string          `gorm:"column:category;not null"`
	Metal       enums.Metal     `gorm:"column:metal;not null"`
	Purity      string          `gorm:"column:purity;not null"`
	TotalGrams  decimal.Decimal `gorm:"column:total_grams;type:numeric(10,3);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	Charges     Charges         `gorm:"embedded"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is one entry of a product's ordered gallery.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	URL       string    `gorm:"column:url;not null"`
	Alt       *string   `gorm:"column:alt"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
