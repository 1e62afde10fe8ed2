package checkout

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/auraluxe/auraluxe-backend/internal/cart"
	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	"github.com/auraluxe/auraluxe-backend/internal/pricing"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

var referencePattern = regexp.MustCompile(`^AL-[A-Z0-9]{6}$`)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  metal TEXT NOT NULL,
  purity TEXT NOT NULL,
  total_grams TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  making_charge TEXT NOT NULL DEFAULT '0',
  wastage_percent TEXT NOT NULL DEFAULT '0',
  packaging_charge TEXT NOT NULL DEFAULT '0',
  gst_percent TEXT NOT NULL DEFAULT '3',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  reference TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  total INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	referenceIndex := `CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_reference ON orders (reference);`
	orderLineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  name TEXT NOT NULL,
  metal TEXT NOT NULL,
  purity TEXT NOT NULL,
  total_grams TEXT NOT NULL,
  base_price TEXT NOT NULL,
  wastage TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  gst TEXT NOT NULL,
  final_price INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  line_total INTEGER NOT NULL,
  snapshot_version INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`

	for _, ddl := range []string{products, orders, referenceIndex, orderLineItems} {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fakeCarts struct {
	carts   map[string]cart.Cart
	cleared []string
}

func (f *fakeCarts) Get(_ context.Context, token string) (*cart.Cart, error) {
	doc, ok := f.carts[token]
	if !ok {
		return &cart.Cart{}, nil
	}
	return &doc, nil
}

func (f *fakeCarts) Clear(_ context.Context, token string) error {
	delete(f.carts, token)
	f.cleared = append(f.cleared, token)
	return nil
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()
	product := models.Product{
		ID:         uuid.New(),
		Name:       "Heritage Band",
		Category:   "rings",
		Metal:      enums.MetalGold,
		Purity:     "22kt",
		TotalGrams: decimal.NewFromInt(10),
		Stock:      stock,
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func cartWith(product models.Product, qty int, finalPrice int64) cart.Cart {
	return cart.Cart{Lines: []cart.Line{{
		ProductID:  product.ID,
		Name:       product.Name,
		Metal:      product.Metal,
		Purity:     product.Purity,
		TotalGrams: product.TotalGrams,
		Pricing: pricing.Quote{
			BasePrice:  decimal.NewFromInt(60000),
			Wastage:    decimal.NewFromInt(1800),
			Subtotal:   decimal.NewFromInt(62050),
			GST:        decimal.NewFromFloat(1861.5),
			FinalPrice: finalPrice,
		},
		Quantity: qty,
	}}}
}

func newCheckoutService(t *testing.T, db *gorm.DB, carts cartAccess) Service {
	t.Helper()
	svc, err := NewService(gormTxRunner{db: db}, catalog.NewRepository(db), carts, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestPlaceOrderHappyPath(t *testing.T) {
	t.Parallel()

	db := setupCheckoutTestDB(t)
	product := seedProduct(t, db, 3)
	carts := &fakeCarts{carts: map[string]cart.Cart{"tok-1": cartWith(product, 2, 63912)}}
	svc := newCheckoutService(t, db, carts)

	order, err := svc.PlaceOrder(context.Background(), "tok-1", Input{
		CustomerName: "Meera Iyer",
		Phone:        "+91 98000 00000",
		Address:      "12 Marine Drive, Mumbai",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if !referencePattern.MatchString(order.Reference) {
		t.Fatalf("unexpected reference format %q", order.Reference)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected Pending status, got %q", order.Status)
	}
	if order.Total != 2*63912 {
		t.Fatalf("expected total %d, got %d", 2*63912, order.Total)
	}

	var stored models.Product
	if err := db.First(&stored, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.Stock != 1 {
		t.Fatalf("expected stock decremented to 1, got %d", stored.Stock)
	}

	var items []models.OrderLineItem
	if err := db.Find(&items, "order_id = ?", order.ID).Error; err != nil {
		t.Fatalf("load line items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].SnapshotVersion != models.LineItemSnapshotVersion {
		t.Fatalf("expected snapshot version %d, got %d", models.LineItemSnapshotVersion, items[0].SnapshotVersion)
	}
	if items[0].LineTotal != 2*63912 {
		t.Fatalf("expected line total %d, got %d", 2*63912, items[0].LineTotal)
	}

	if len(carts.cleared) != 1 || carts.cleared[0] != "tok-1" {
		t.Fatalf("expected cart cleared, got %v", carts.cleared)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	t.Parallel()

	db := setupCheckoutTestDB(t)
	product := seedProduct(t, db, 2)
	carts := &fakeCarts{carts: map[string]cart.Cart{"tok-1": cartWith(product, 3, 63912)}}
	svc := newCheckoutService(t, db, carts)

	_, err := svc.PlaceOrder(context.Background(), "tok-1", Input{
		CustomerName: "Meera Iyer",
		Phone:        "+91 98000 00000",
		Address:      "12 Marine Drive, Mumbai",
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock code, got %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.Stock != 2 {
		t.Fatalf("expected stock untouched at 2, got %d", stored.Stock)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders persisted, got %d", orderCount)
	}

	if len(carts.cleared) != 0 {
		t.Fatal("cart must survive a failed checkout")
	}
}

func TestPlaceOrderSequentialDrainsStockExactlyOnce(t *testing.T) {
	t.Parallel()

	db := setupCheckoutTestDB(t)
	product := seedProduct(t, db, 1)
	carts := &fakeCarts{carts: map[string]cart.Cart{
		"tok-1": cartWith(product, 1, 63912),
		"tok-2": cartWith(product, 1, 63912),
	}}
	svc := newCheckoutService(t, db, carts)

	input := Input{CustomerName: "Meera Iyer", Phone: "+91 98000 00000", Address: "12 Marine Drive, Mumbai"}

	if _, err := svc.PlaceOrder(context.Background(), "tok-1", input); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	_, err := svc.PlaceOrder(context.Background(), "tok-2", input)
	if err == nil {
		t.Fatal("expected second checkout to fail on stock")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock code, got %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", stored.Stock)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	t.Parallel()

	db := setupCheckoutTestDB(t)
	svc := newCheckoutService(t, db, &fakeCarts{carts: map[string]cart.Cart{}})

	_, err := svc.PlaceOrder(context.Background(), "tok-1", Input{
		CustomerName: "Meera Iyer",
		Phone:        "+91 98000 00000",
		Address:      "12 Marine Drive, Mumbai",
	})
	if err == nil {
		t.Fatal("expected empty cart rejection")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestPlaceOrderValidatesShipping(t *testing.T) {
	t.Parallel()

	db := setupCheckoutTestDB(t)
	product := seedProduct(t, db, 1)
	carts := &fakeCarts{carts: map[string]cart.Cart{"tok-1": cartWith(product, 1, 63912)}}
	svc := newCheckoutService(t, db, carts)

	cases := []struct {
		name  string
		input Input
	}{
		{"missingName", Input{Phone: "+91 98000 00000", Address: "12 Marine Drive"}},
		{"missingPhone", Input{CustomerName: "Meera Iyer", Address: "12 Marine Drive"}},
		{"missingAddress", Input{CustomerName: "Meera Iyer", Phone: "+91 98000 00000"}},
		{"whitespaceOnly", Input{CustomerName: "  ", Phone: " ", Address: "\t"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), "tok-1", tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestMintReferenceFormat(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		ref, err := mintReference()
		if err != nil {
			t.Fatalf("mint reference: %v", err)
		}
		if !referencePattern.MatchString(ref) {
			t.Fatalf("unexpected reference %q", ref)
		}
		seen[ref] = struct{}{}
	}
	if len(seen) < 45 {
		t.Fatalf("references look far from random: %d unique of 50", len(seen))
	}
}
