package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

// Service mutates the token-scoped cart. Adds capture a price snapshot from
// the live catalog; everything after that works purely on the stored document.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	Add(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	Remove(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, delta int) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type catalogView interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.PricedProduct, error)
}

type service struct {
	store   Store
	catalog catalogView
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the cart service.
func NewService(store Store, view catalogView, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if view == nil {
		return nil, fmt.Errorf("catalog view required")
	}
	return &service{store: store, catalog: view, logg: logg, now: time.Now}, nil
}

// Get returns the cart for the token, empty when none has been saved yet.
func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &Cart{}, nil
	}
	return cart, nil
}

// Add puts one unit of the product in the cart. A repeat add of the same
// product bumps the quantity and keeps the original snapshot.
func (s *service) Add(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	priced, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if priced == nil || !priced.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if i := cart.lineIndex(productID); i >= 0 {
		cart.Lines[i].Quantity++
	} else {
		line := Line{
			ProductID:  priced.ID,
			Name:       priced.Name,
			Metal:      priced.Metal,
			Purity:     priced.Purity,
			TotalGrams: priced.TotalGrams,
			Pricing:    priced.Pricing,
			Quantity:   1,
			AddedAt:    s.now(),
		}
		if len(priced.Images) > 0 {
			line.Image = priced.Images[0].URL
		}
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops the product's line entirely. Removing an absent product is a
// no-op, not an error.
func (s *service) Remove(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	i := cart.lineIndex(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := s.save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity applies a signed delta to the line's quantity, flooring at
// one. Dropping a line is Remove's job, not a decrement's side effect.
func (s *service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, delta int) (*Cart, error) {
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	i := cart.lineIndex(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}

	qty := cart.Lines[i].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	cart.Lines[i].Quantity = qty

	if err := s.save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the whole cart document.
func (s *service) Clear(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

func (s *service) save(ctx context.Context, token string, cart *Cart) error {
	cart.UpdatedAt = s.now()
	return s.store.Save(ctx, token, cart)
}
