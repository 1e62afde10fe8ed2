package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	"github.com/auraluxe/auraluxe-backend/internal/pricing"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

type memoryStore struct {
	docs map[string]Cart
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string]Cart{}}
}

func (m *memoryStore) Load(_ context.Context, token string) (*Cart, error) {
	doc, ok := m.docs[token]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *memoryStore) Save(_ context.Context, token string, cart *Cart) error {
	m.docs[token] = *cart
	return nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.docs, token)
	return nil
}

type fakeCatalog struct {
	products map[uuid.UUID]catalog.PricedProduct
}

func (f *fakeCatalog) GetByID(_ context.Context, id uuid.UUID) (*catalog.PricedProduct, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func pricedPendant(finalPrice int64) catalog.PricedProduct {
	return catalog.PricedProduct{
		ID:         uuid.New(),
		Name:       "Lotus Pendant",
		Metal:      enums.MetalGold,
		Purity:     "22kt",
		TotalGrams: decimal.NewFromInt(5),
		IsActive:   true,
		Pricing:    pricing.Quote{FinalPrice: finalPrice},
	}
}

func newCartService(t *testing.T, store Store, view catalogView) Service {
	t.Helper()
	svc, err := NewService(store, view, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddSnapshotSurvivesRateChange(t *testing.T) {
	pendant := pricedPendant(30000)
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{pendant.ID: pendant}}
	svc := newCartService(t, newMemoryStore(), view)

	cart, err := svc.Add(context.Background(), "tok-1", pendant.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cart.Lines[0].Pricing.FinalPrice != 30000 {
		t.Fatalf("expected snapshot price 30000, got %d", cart.Lines[0].Pricing.FinalPrice)
	}

	// Simulate a rate update landing after the add.
	repriced := pendant
	repriced.Pricing = pricing.Quote{FinalPrice: 34500}
	view.products[pendant.ID] = repriced

	cart, err = svc.Get(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart.Lines[0].Pricing.FinalPrice != 30000 {
		t.Fatalf("snapshot must be immune to rate changes, got %d", cart.Lines[0].Pricing.FinalPrice)
	}

	// A repeat add bumps quantity but keeps the original snapshot too.
	cart, err = svc.Add(context.Background(), "tok-1", pendant.ID)
	if err != nil {
		t.Fatalf("repeat add: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", cart.Lines)
	}
	if cart.Lines[0].Pricing.FinalPrice != 30000 {
		t.Fatalf("repeat add must not reprice the line, got %d", cart.Lines[0].Pricing.FinalPrice)
	}
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	pendant := pricedPendant(30000)
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{pendant.ID: pendant}}
	svc := newCartService(t, newMemoryStore(), view)

	if _, err := svc.Add(context.Background(), "tok-1", pendant.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.UpdateQuantity(context.Background(), "tok-1", pendant.ID, -5)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity floored at 1, got %d", cart.Lines[0].Quantity)
	}

	cart, err = svc.UpdateQuantity(context.Background(), "tok-1", pendant.ID, 3)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if cart.Lines[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", cart.Lines[0].Quantity)
	}
}

func TestTotalSumsQuantityWeightedSnapshots(t *testing.T) {
	pendant := pricedPendant(30000)
	ring := pricedPendant(12500)
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{
		pendant.ID: pendant,
		ring.ID:    ring,
	}}
	svc := newCartService(t, newMemoryStore(), view)

	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok-1", pendant.ID); err != nil {
		t.Fatalf("add pendant: %v", err)
	}
	if _, err := svc.Add(ctx, "tok-1", pendant.ID); err != nil {
		t.Fatalf("add pendant again: %v", err)
	}
	cart, err := svc.Add(ctx, "tok-1", ring.ID)
	if err != nil {
		t.Fatalf("add ring: %v", err)
	}

	if got, want := cart.Total(), int64(2*30000+12500); got != want {
		t.Fatalf("expected total %d, got %d", want, got)
	}
	if cart.ItemCount() != 3 {
		t.Fatalf("expected 3 items, got %d", cart.ItemCount())
	}
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	pendant := pricedPendant(30000)
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{pendant.ID: pendant}}
	svc := newCartService(t, newMemoryStore(), view)

	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok-1", pendant.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.Remove(ctx, "tok-1", uuid.New())
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(cart.Lines))
	}

	cart, err = svc.Remove(ctx, "tok-1", pendant.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestAddUnknownOrInactiveProduct(t *testing.T) {
	hidden := pricedPendant(30000)
	hidden.IsActive = false
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{hidden.ID: hidden}}
	svc := newCartService(t, newMemoryStore(), view)

	for _, id := range []uuid.UUID{uuid.New(), hidden.ID} {
		_, err := svc.Add(context.Background(), "tok-1", id)
		if err == nil {
			t.Fatal("expected not found error")
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found code, got %v", err)
		}
	}
}

func TestClearDeletesDocument(t *testing.T) {
	pendant := pricedPendant(30000)
	view := &fakeCatalog{products: map[uuid.UUID]catalog.PricedProduct{pendant.ID: pendant}}
	store := newMemoryStore()
	svc := newCartService(t, store, view)

	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok-1", pendant.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, "tok-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.docs["tok-1"]; ok {
		t.Fatal("expected cart document deleted")
	}

	cart, err := svc.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatal("expected empty cart after clear")
	}
}
