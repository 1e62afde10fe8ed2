package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/auraluxe/auraluxe-backend/internal/pricing"
	"github.com/auraluxe/auraluxe-backend/internal/rates"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/metrics"
)

// Service is the catalog pricing view plus its administrative mutators.
// Every read returns live quotes computed against the current rate table;
// stored products never carry a price.
type Service interface {
	ListPublic(ctx context.Context) ([]PricedProduct, error)
	ListAdmin(ctx context.Context) ([]PricedProduct, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PricedProduct, error)
	Create(ctx context.Context, input CreateProductInput) (*PricedProduct, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*PricedProduct, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*PricedProduct, error)
}

type productRepo interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	SetStock(ctx context.Context, id uuid.UUID, newStock int) error
	ToggleActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo        productRepo
	rates       rates.Reader
	logg        *logger.Logger
	metrics     *metrics.PricingMetrics
	strictMatch bool
}

// NewService builds the catalog service. With strictMatch enabled,
// fallback rate matches are rejected instead of priced.
func NewService(repo productRepo, rateReader rates.Reader, logg *logger.Logger, m *metrics.PricingMetrics, strictMatch bool) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if rateReader == nil {
		return nil, fmt.Errorf("rate reader required")
	}
	return &service{
		repo:        repo,
		rates:       rateReader,
		logg:        logg,
		metrics:     m,
		strictMatch: strictMatch,
	}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]PricedProduct, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.priceAll(ctx, products)
}

func (s *service) ListAdmin(ctx context.Context) ([]PricedProduct, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.priceAll(ctx, products)
}

// GetByID returns (nil, nil) when the product does not exist so handlers can
// shape their own 404.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PricedProduct, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	rateRows, err := s.rates.List(ctx)
	if err != nil {
		return nil, err
	}
	priced, err := s.priceOne(ctx, *product, rateRows)
	if err != nil {
		return nil, err
	}
	return &priced, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*PricedProduct, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		Metal:       input.Metal,
		Purity:      strings.TrimSpace(input.Purity),
		TotalGrams:  input.TotalGrams,
		Stock:       input.Stock,
		Charges:     input.Charges,
		IsActive:    input.IsActive,
	}
	for i, img := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			URL:      img.URL,
			Alt:      img.Alt,
			Position: i,
		})
	}

	created, err := s.repo.Create(ctx, &product)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		lctx := s.logg.WithFields(ctx, map[string]any{
			"product_id": created.ID,
			"metal":      created.Metal,
			"purity":     created.Purity,
		})
		s.logg.Info(lctx, "product created")
	}
	return s.GetByID(ctx, created.ID)
}

func (s *service) SetStock(ctx context.Context, id uuid.UUID, stock int) (*PricedProduct, error) {
	if stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if err := s.repo.SetStock(ctx, id, stock); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) ToggleActive(ctx context.Context, id uuid.UUID) (*PricedProduct, error) {
	active, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		lctx := s.logg.WithFields(ctx, map[string]any{"product_id": id, "is_active": active})
		s.logg.Info(lctx, "product visibility toggled")
	}
	return s.GetByID(ctx, id)
}

// priceAll quotes every product against one snapshot of the rate table. Any
// product failing to price aborts the whole batch; a partially priced catalog
// is worse than an explicit error.
func (s *service) priceAll(ctx context.Context, products []models.Product) ([]PricedProduct, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObservePricingDuration(time.Since(start))
	}()

	rateRows, err := s.rates.List(ctx)
	if err != nil {
		return nil, err
	}

	priced := make([]PricedProduct, 0, len(products))
	var errs error
	for _, product := range products {
		row, err := s.priceOne(ctx, product, rateRows)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("product %s: %w", product.ID, err))
			continue
		}
		priced = append(priced, row)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "catalog pricing failed")
	}
	return priced, nil
}

func (s *service) priceOne(ctx context.Context, product models.Product, rateRows []models.MetalRate) (PricedProduct, error) {
	match, err := pricing.MatchRate(product.Metal, product.Purity, rateRows)
	if err != nil {
		return PricedProduct{}, err
	}
	if match.Fallback {
		if s.strictMatch {
			return PricedProduct{}, pkgerrors.New(
				pkgerrors.CodeNoMatchingRate,
				fmt.Sprintf("no rate configured for %s %s", product.Metal, product.Purity),
			)
		}
		s.metrics.IncRateFallback(string(product.Metal))
		if s.logg != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"product_id":  product.ID,
				"want_metal":  product.Metal,
				"want_purity": product.Purity,
				"used_metal":  match.Rate.Metal,
				"used_purity": match.Rate.Purity,
			})
			s.logg.Warn(lctx, "rate fallback used for product pricing")
		}
	}

	quote, err := pricing.Calculate(product.TotalGrams, match.Rate.PricePerGram, product.Charges)
	if err != nil {
		return PricedProduct{}, err
	}
	return toPricedProduct(product, quote, match.Fallback), nil
}

func validateCreateInput(input CreateProductInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if !input.Metal.IsValid() {
		details["metal"] = fmt.Sprintf("unknown metal %q", input.Metal)
	}
	if strings.TrimSpace(input.Purity) == "" {
		details["purity"] = "is required"
	}
	if !input.TotalGrams.IsPositive() {
		details["totalGrams"] = "must be greater than zero"
	}
	if input.Stock < 0 {
		details["stock"] = "must not be negative"
	}
	if input.Charges.MakingCharge.IsNegative() || input.Charges.WastagePercent.IsNegative() ||
		input.Charges.PackagingCharge.IsNegative() || input.Charges.GSTPercent.IsNegative() {
		details["charges"] = "must not be negative"
	}
	for i, img := range input.Images {
		if strings.TrimSpace(img.URL) == "" {
			details[fmt.Sprintf("images[%d].url", i)] = "is required"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return nil
}
