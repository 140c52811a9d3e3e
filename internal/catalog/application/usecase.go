package application

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-grocery/internal/catalog/domain"
	"go-grocery/internal/catalog/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// ProductUseCase handles catalog business logic
type ProductUseCase struct {
	repo ports.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase creates a new product use case
func NewProductUseCase(repo ports.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		repo: repo,
		log:  log,
	}
}

// ProductInput carries the writable fields of a product
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
}

// CreateProduct creates a new active product
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(
		input.Name,
		input.Description,
		input.Category,
		input.Price,
		input.StockQuantity,
		input.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, product); err != nil {
		return nil, errors.NewInternal("failed to create product", err)
	}

	uc.log.WithContext(ctx).Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct rewrites the writable fields of an existing product
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.StockQuantity = input.StockQuantity
	product.ImageURL = input.ImageURL
	product.Touch()

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, product); err != nil {
		return nil, errors.NewInternal("failed to update product", err)
	}

	return product, nil
}

// DeleteProduct soft-deletes a product by marking it inactive
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()

	if err := uc.repo.Save(ctx, product); err != nil {
		return errors.NewInternal("failed to delete product", err)
	}

	uc.log.WithContext(ctx).Info("product deactivated", zap.String("product_id", id))
	return nil
}

// GetProduct retrieves an active product by ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.repo.FindActiveByID(ctx, id)
}

// ProductByID retrieves a product regardless of its active flag.
// Used by the order engine, which must still resolve soft-deleted products
// referenced by existing orders.
func (uc *ProductUseCase) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

// ListProducts retrieves all active products
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return uc.repo.FindAllActive(ctx)
}

// ListProductsByCategory retrieves active products in a category
func (uc *ProductUseCase) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return uc.repo.FindActiveByCategory(ctx, category)
}

// SearchProducts retrieves active products matching a search term
func (uc *ProductUseCase) SearchProducts(ctx context.Context, term string) ([]*domain.Product, error) {
	return uc.repo.Search(ctx, term)
}

// LowStockProducts retrieves active products with stock below threshold
func (uc *ProductUseCase) LowStockProducts(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return uc.repo.FindLowStock(ctx, threshold)
}

// AdjustStock atomically changes a product's stock quantity
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, delta int) error {
	return uc.repo.AdjustStock(ctx, id, delta)
}
