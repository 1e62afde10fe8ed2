package rates

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

// Repository persists the metal rate table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every rate in stable creation order. The matcher's fallback
// policy leans on this ordering, so it must not change between calls.
func (r *Repository) List(ctx context.Context) ([]models.MetalRate, error) {
	var rows []models.MetalRate
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list metal rates")
	}
	return rows, nil
}

// Upsert creates or overwrites the unique (metal, purity) record, stamping
// updated_at with now.
func (r *Repository) Upsert(ctx context.Context, metal enums.Metal, purity string, pricePerGram decimal.Decimal, now time.Time) (*models.MetalRate, error) {
	tx := r.db.WithContext(ctx)

	var rate models.MetalRate
	err := tx.First(&rate, "metal = ? AND purity = ?", metal, purity).Error
	switch {
	case err == nil:
		rate.PricePerGram = pricePerGram
		rate.UpdatedAt = now
		if err := tx.Save(&rate).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update metal rate")
		}
		return &rate, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rate = models.MetalRate{
			ID:           uuid.New(),
			Metal:        metal,
			Purity:       purity,
			PricePerGram: pricePerGram,
			UpdatedAt:    now,
		}
		if err := tx.Create(&rate).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert metal rate")
		}
		return &rate, nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find metal rate")
	}
}
