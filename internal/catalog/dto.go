package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/internal/pricing"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// PricedProduct is a catalog row joined with its live quote. It is a pure
// projection; nothing here is persisted.
type PricedProduct struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category"`
	Metal       enums.Metal     `json:"metal"`
	Purity      string          `json:"purity"`
	TotalGrams  decimal.Decimal `json:"totalGrams"`
	Stock       int             `json:"stock"`
	Charges     models.Charges  `json:"charges"`
	Images      []ImageView     `json:"images"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	Pricing     pricing.Quote   `json:"pricing"`
	// RateFallback marks quotes priced off the fallback-first-rate policy so
	// admin views can flag suspect pricing.
	RateFallback bool `json:"rateFallback,omitempty"`
}

// ImageView is one ordered gallery entry.
type ImageView struct {
	URL string  `json:"url"`
	Alt *string `json:"alt,omitempty"`
}

// CreateProductInput carries an administrative catalog insert.
type CreateProductInput struct {
	Name        string
	Description *string
	Category    string
	Metal       enums.Metal
	Purity      string
	TotalGrams  decimal.Decimal
	Stock       int
	Charges     models.Charges
	Images      []ImageInput
	IsActive    bool
}

// ImageInput is one gallery entry in submission order.
type ImageInput struct {
	URL string
	Alt *string
}

func toPricedProduct(product models.Product, quote pricing.Quote, fallback bool) PricedProduct {
	images := make([]ImageView, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, ImageView{URL: img.URL, Alt: img.Alt})
	}
	return PricedProduct{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Category:     product.Category,
		Metal:        product.Metal,
		Purity:       product.Purity,
		TotalGrams:   product.TotalGrams,
		Stock:        product.Stock,
		Charges:      product.Charges,
		Images:       images,
		IsActive:     product.IsActive,
		CreatedAt:    product.CreatedAt,
		Pricing:      quote,
		RateFallback: fallback,
	}
}
