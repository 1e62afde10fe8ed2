package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

// Reader is the read surface pricing consumers depend on.
type Reader interface {
	List(ctx context.Context) ([]models.MetalRate, error)
}

// Service exposes the rate table to the back office and the catalog.
type Service interface {
	Reader
	Upsert(ctx context.Context, input UpsertInput) (*models.MetalRate, error)
}

// UpsertInput carries one administrative rate update.
type UpsertInput struct {
	Metal        enums.Metal
	Purity       string
	PricePerGram decimal.Decimal
}

type repository interface {
	List(ctx context.Context) ([]models.MetalRate, error)
	Upsert(ctx context.Context, metal enums.Metal, purity string, pricePerGram decimal.Decimal, now time.Time) (*models.MetalRate, error)
}

type service struct {
	repo repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the rate service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rates repository required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) List(ctx context.Context) ([]models.MetalRate, error) {
	return s.repo.List(ctx)
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*models.MetalRate, error) {
	if !input.Metal.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown metal %q", input.Metal))
	}
	purity := strings.TrimSpace(input.Purity)
	if purity == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purity is required")
	}
	if input.PricePerGram.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per gram must not be negative")
	}

	rate, err := s.repo.Upsert(ctx, input.Metal, purity, input.PricePerGram, s.now())
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"metal":          rate.Metal,
			"purity":         rate.Purity,
			"price_per_gram": rate.PricePerGram,
		})
		s.logg.Info(ctx, "metal rate upserted")
	}
	return rate, nil
}
