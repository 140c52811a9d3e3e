package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"go-grocery/internal/cart/domain"
	"go-grocery/internal/cart/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// MockCartRepository is an in-memory implementation of CartRepository
type MockCartRepository struct {
	carts map[string]*domain.Cart
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]*domain.Cart)}
}

func (m *MockCartRepository) FindByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, ok := m.carts[customerID]
	if !ok {
		return nil, domain.NewCartNotFound(customerID)
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *MockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart.ID == "" {
		cart.ID = "cart-" + cart.CustomerID
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	m.carts[cart.CustomerID] = &copied
	return nil
}

func (m *MockCartRepository) DeleteByCustomerID(ctx context.Context, customerID string) error {
	delete(m.carts, customerID)
	return nil
}

// MockProductCatalog is a fixed-inventory implementation of ProductCatalog
type MockProductCatalog struct {
	products map[string]*ports.ProductInfo
}

func NewMockProductCatalog() *MockProductCatalog {
	return &MockProductCatalog{
		products: map[string]*ports.ProductInfo{
			"p-1": {ID: "p-1", Name: "Bananas", Category: "Fruit", Price: decimal.RequireFromString("1.25"), StockQuantity: 10},
			"p-2": {ID: "p-2", Name: "Milk", Category: "Dairy", Price: decimal.RequireFromString("0.99"), StockQuantity: 3},
		},
	}
}

func (m *MockProductCatalog) ActiveProduct(ctx context.Context, productID string) (*ports.ProductInfo, error) {
	product, ok := m.products[productID]
	if !ok {
		return nil, errors.NewNotFound("product", productID)
	}
	copied := *product
	return &copied, nil
}

func newTestUseCase() (*CartUseCase, *MockCartRepository, *MockProductCatalog) {
	repo := NewMockCartRepository()
	catalog := NewMockProductCatalog()
	log := logger.New("test", "debug", "json")
	return NewCartUseCase(repo, catalog, log), repo, catalog
}

func assertTotalsConsistent(t *testing.T, cart *domain.Cart) {
	t.Helper()

	total := decimal.Zero
	count := 0
	for _, item := range cart.Items {
		total = total.Add(item.TotalPrice)
		count += item.Quantity
	}
	if !cart.TotalAmount.Equal(total) {
		t.Errorf("total amount %s does not match sum of line totals %s", cart.TotalAmount, total)
	}
	if cart.TotalItems != count {
		t.Errorf("total items %d does not match sum of quantities %d", cart.TotalItems, count)
	}
}

func TestGetOrCreateCart_CreatesEmptyCart(t *testing.T) {
	useCase, repo, _ := newTestUseCase()

	cart, err := useCase.GetOrCreateCart(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(cart.Items))
	}
	if !cart.TotalAmount.IsZero() || cart.TotalItems != 0 {
		t.Error("expected zero totals on a fresh cart")
	}
	if _, ok := repo.carts["c-1"]; !ok {
		t.Error("expected the empty cart to be persisted")
	}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-1", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cart, err := useCase.AddItem(context.Background(), "c-1", "p-1", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
	if want := decimal.RequireFromString("6.25"); !cart.Items[0].TotalPrice.Equal(want) {
		t.Errorf("expected line total %s, got %s", want, cart.Items[0].TotalPrice)
	}
	assertTotalsConsistent(t, cart)
}

func TestAddItem_ChecksProspectiveTotalQuantity(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	// p-2 has stock 3; 2 then 2 more exceeds it even though each
	// delta alone would fit
	if _, err := useCase.AddItem(context.Background(), "c-1", "p-2", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := useCase.AddItem(context.Background(), "c-1", "p-2", 2)
	if !errors.Is(err, errors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	cart, err := useCase.GetOrCreateCart(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("expected quantity unchanged at 2, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	_, err := useCase.AddItem(context.Background(), "c-1", "nope", 1)
	if !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	_, err := useCase.AddItem(context.Background(), "c-1", "p-1", 0)
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	useCase, repo, _ := newTestUseCase()

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-1", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cart, err := useCase.UpdateItemQuantity(context.Background(), "c-1", "p-1", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cart.Items) != 0 {
		t.Errorf("expected line removed, got %d items", len(cart.Items))
	}
	if !cart.TotalAmount.IsZero() || cart.TotalItems != 0 {
		t.Error("expected zero totals after removing the only line")
	}
	// Empty cart still exists until explicitly cleared
	if _, ok := repo.carts["c-1"]; !ok {
		t.Error("expected empty cart to still exist")
	}
	assertTotalsConsistent(t, cart)
}

func TestUpdateItemQuantity_RevalidatesStock(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-2", 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := useCase.UpdateItemQuantity(context.Background(), "c-1", "p-2", 4)
	if !errors.Is(err, errors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}

func TestUpdateItemQuantity_MissingCartOrItem(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	if _, err := useCase.UpdateItemQuantity(context.Background(), "c-1", "p-1", 1); !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found for missing cart, got %v", err)
	}

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-1", 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := useCase.UpdateItemQuantity(context.Background(), "c-1", "p-2", 1); !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found for missing line item, got %v", err)
	}
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-1", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cart, err := useCase.RemoveItem(context.Background(), "c-1", "p-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}

	// Second removal of the same product is a no-op
	cart, err = useCase.RemoveItem(context.Background(), "c-1", "p-1")
	if err != nil {
		t.Fatalf("expected no error on repeat removal, got %v", err)
	}
	assertTotalsConsistent(t, cart)
}

func TestClearCart_DeletesDocument(t *testing.T) {
	useCase, repo, _ := newTestUseCase()

	if _, err := useCase.AddItem(context.Background(), "c-1", "p-1", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := useCase.ClearCart(context.Background(), "c-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.carts["c-1"]; ok {
		t.Error("expected cart document to be deleted")
	}
}
