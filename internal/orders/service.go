package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/metrics"
)

// Service is the back-office order surface.
type Service interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type repository interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo    repository
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewService builds the order service.
func NewService(repo repository, logg *logger.Logger, m *metrics.PricingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, logg: logg, metrics: m}, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	return s.repo.GetByReference(ctx, reference)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.metrics.IncStatusChange(status.String())
	if s.logg != nil {
		lctx := s.logg.WithOrderRef(ctx, order.Reference)
		lctx = s.logg.WithField(lctx, "status", status)
		s.logg.Info(lctx, "order status updated")
	}
	return order, nil
}
