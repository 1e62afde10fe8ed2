package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

// Repository wires together the catalog's persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) withImages(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// ListAll returns every product, inactive included, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.withImages(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

// ListActive returns only publicly listed products, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.withImages(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active products")
	}
	return rows, nil
}

// FindByID loads one product with its gallery. A missing row yields
// (nil, nil): absence is a normal outcome here, not a failure.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.withImages(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return &product, nil
}

// Create inserts a product row together with its images.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for i := range product.Images {
		if product.Images[i].ID == uuid.Nil {
			product.Images[i].ID = uuid.New()
		}
		product.Images[i].ProductID = product.ID
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return product, nil
}

// SetStock overwrites the stock level with an absolute value.
func (r *Repository) SetStock(ctx context.Context, id uuid.UUID, newStock int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", newStock)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "set product stock")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// ToggleActive flips the public listing flag and returns the new value.
func (r *Repository) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "toggle product active")
	}
	if result.RowsAffected == 0 {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var product models.Product
	if err := r.db.WithContext(ctx).Select("is_active").First(&product, "id = ?", id).Error; err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return product.IsActive, nil
}

// DecrementStockIfAvailable atomically takes qty units off the shelf, but only
// when enough stock remains. Returns false when the guard rejected the
// decrement. This is the single write that keeps concurrent checkouts from
// overselling.
func (r *Repository) DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "decrement product stock")
	}
	return result.RowsAffected == 1, nil
}
