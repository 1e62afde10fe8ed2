package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/auraluxe/auraluxe-backend/internal/cart"
	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	"github.com/auraluxe/auraluxe-backend/pkg/db"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/metrics"
)

const maxReferenceAttempts = 5

// Input carries the shipping details submitted at checkout.
type Input struct {
	CustomerName string
	Phone        string
	Address      string
}

// Service converts a cart into an order. Stock is taken inside one
// transaction with a conditional decrement, so two concurrent checkouts can
// never both claim the last unit.
type Service interface {
	PlaceOrder(ctx context.Context, cartToken string, input Input) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccess interface {
	Get(ctx context.Context, token string) (*cart.Cart, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	tx       txRunner
	products *catalog.Repository
	carts    cartAccess
	logg     *logger.Logger
	metrics  *metrics.PricingMetrics
}

// NewService builds the checkout service.
func NewService(tx txRunner, products *catalog.Repository, carts cartAccess, logg *logger.Logger, m *metrics.PricingMetrics) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	return &service{tx: tx, products: products, carts: carts, logg: logg, metrics: m}, nil
}

func (s *service) PlaceOrder(ctx context.Context, cartToken string, input Input) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(current.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var order *models.Order
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		order, err = s.placeOnce(ctx, current, input)
		if err == nil {
			break
		}
		if db.IsUniqueViolation(err, "idx_orders_reference") {
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not mint a unique order reference")
	}

	// The order is committed; a failed cart cleanup must not undo it.
	if err := s.carts.Clear(ctx, cartToken); err != nil && s.logg != nil {
		s.logg.Error(ctx, "clearing cart after checkout", err)
	}

	s.metrics.IncOrderPlaced()
	if s.logg != nil {
		lctx := s.logg.WithOrderRef(ctx, order.Reference)
		lctx = s.logg.WithField(lctx, "total", order.Total)
		s.logg.Info(lctx, "order placed")
	}
	return order, nil
}

// placeOnce runs one transactional attempt: decrement stock per line, then
// insert the order with its frozen line snapshots.
func (s *service) placeOnce(ctx context.Context, current *cart.Cart, input Input) (*models.Order, error) {
	reference, err := mintReference()
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:           uuid.New(),
		Reference:    reference,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		Total:        current.Total(),
		Status:       enums.OrderStatusPending,
	}
	for _, line := range current.Lines {
		productID := line.ProductID
		order.Items = append(order.Items, models.OrderLineItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ProductID:       &productID,
			Name:            line.Name,
			Metal:           line.Metal,
			Purity:          line.Purity,
			TotalGrams:      line.TotalGrams,
			BasePrice:       line.Pricing.BasePrice,
			Wastage:         line.Pricing.Wastage,
			Subtotal:        line.Pricing.Subtotal,
			GST:             line.Pricing.GST,
			FinalPrice:      line.Pricing.FinalPrice,
			Quantity:        line.Quantity,
			LineTotal:       line.Pricing.FinalPrice * int64(line.Quantity),
			SnapshotVersion: models.LineItemSnapshotVersion,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		for _, line := range current.Lines {
			taken, err := products.DecrementStockIfAvailable(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !taken {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("not enough stock for %s", line.Name)).
					WithDetails(map[string]any{
						"productId": line.ProductID,
						"requested": line.Quantity,
					})
			}
		}
		if err := tx.Create(&order).Error; err != nil {
			if db.IsUniqueViolation(err, "idx_orders_reference") {
				return err
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func validateInput(input Input) error {
	details := map[string]string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customerName"] = "is required"
	}
	if strings.TrimSpace(input.Phone) == "" {
		details["phone"] = "is required"
	}
	if strings.TrimSpace(input.Address) == "" {
		details["address"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "incomplete shipping details").WithDetails(details)
	}
	return nil
}
