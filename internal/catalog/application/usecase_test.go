package application

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"go-grocery/internal/catalog/domain"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// MockProductRepository is an in-memory implementation of ProductRepository
type MockProductRepository struct {
	products map[string]*domain.Product
	nextID   int
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
		nextID:   1,
	}
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, domain.NewProductNotFound(id)
	}
	copied := *product
	return &copied, nil
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok || !product.Active {
		return nil, domain.NewProductNotFound(id)
	}
	copied := *product
	return &copied, nil
}

func (m *MockProductRepository) FindAllActive(ctx context.Context) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range m.products {
		if p.Active {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockProductRepository) FindActiveByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range m.products {
		if p.Active && p.Category == category {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockProductRepository) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	term = strings.ToLower(term)
	var result []*domain.Product
	for _, p := range m.products {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if p.Active && strings.Contains(haystack, term) {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range m.products {
		if p.Active && p.StockQuantity < threshold {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = "p-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	product, ok := m.products[id]
	if !ok {
		return domain.NewProductNotFound(id)
	}
	if product.StockQuantity+delta < 0 {
		return errors.NewInsufficientStock(id)
	}
	product.StockQuantity += delta
	return nil
}

func newTestUseCase() (*ProductUseCase, *MockProductRepository) {
	repo := NewMockProductRepository()
	log := logger.New("test", "debug", "json")
	return NewProductUseCase(repo, log), repo
}

func TestCreateProduct_Success(t *testing.T) {
	useCase, _ := newTestUseCase()

	product, err := useCase.CreateProduct(context.Background(), ProductInput{
		Name:          "Bananas",
		Category:      "Fruit",
		Price:         decimal.RequireFromString("1.25"),
		StockQuantity: 40,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if product.ID == "" {
		t.Error("expected an assigned product ID")
	}
	if !product.Active {
		t.Error("expected product to be active")
	}
}

func TestCreateProduct_RejectsZeroPrice(t *testing.T) {
	useCase, _ := newTestUseCase()

	_, err := useCase.CreateProduct(context.Background(), ProductInput{
		Name:     "Free stuff",
		Category: "Misc",
		Price:    decimal.Zero,
	})
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	useCase, repo := newTestUseCase()

	product, err := useCase.CreateProduct(context.Background(), ProductInput{
		Name:          "Milk",
		Category:      "Dairy",
		Price:         decimal.RequireFromString("0.99"),
		StockQuantity: 5,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := useCase.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Still present, just inactive
	stored := repo.products[product.ID]
	if stored == nil {
		t.Fatal("expected product document to survive soft delete")
	}
	if stored.Active {
		t.Error("expected product to be inactive")
	}

	// Active-only lookup no longer sees it
	if _, err := useCase.GetProduct(context.Background(), product.ID); !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found after soft delete, got %v", err)
	}
}

func TestAdjustStock_FailsBelowZero(t *testing.T) {
	useCase, repo := newTestUseCase()

	product, err := useCase.CreateProduct(context.Background(), ProductInput{
		Name:          "Eggs",
		Category:      "Dairy",
		Price:         decimal.RequireFromString("3.50"),
		StockQuantity: 6,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := useCase.AdjustStock(context.Background(), product.ID, -10); !errors.Is(err, errors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if repo.products[product.ID].StockQuantity != 6 {
		t.Errorf("expected stock unchanged, got %d", repo.products[product.ID].StockQuantity)
	}

	if err := useCase.AdjustStock(context.Background(), product.ID, -6); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.products[product.ID].StockQuantity != 0 {
		t.Errorf("expected stock 0, got %d", repo.products[product.ID].StockQuantity)
	}
}

func TestLowStockProducts(t *testing.T) {
	useCase, _ := newTestUseCase()

	for name, stock := range map[string]int{"A": 2, "B": 50} {
		_, err := useCase.CreateProduct(context.Background(), ProductInput{
			Name:          name,
			Category:      "Misc",
			Price:         decimal.RequireFromString("1.00"),
			StockQuantity: stock,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	low, err := useCase.LowStockProducts(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(low) != 1 || low[0].Name != "A" {
		t.Errorf("expected only product A below threshold, got %v", low)
	}
}
