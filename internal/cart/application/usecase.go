package application

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-grocery/internal/cart/domain"
	"go-grocery/internal/cart/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// CartUseCase handles cart business logic
type CartUseCase struct {
	repo    ports.CartRepository
	catalog ports.ProductCatalog
	log     *logger.Logger
}

// NewCartUseCase creates a new cart use case
func NewCartUseCase(repo ports.CartRepository, catalog ports.ProductCatalog, log *logger.Logger) *CartUseCase {
	return &CartUseCase{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// GetOrCreateCart returns the customer's cart, creating and persisting an
// empty one if none exists yet.
func (uc *CartUseCase) GetOrCreateCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := uc.repo.FindByCustomerID(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	cart = domain.NewCart(customerID)
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, errors.NewInternal("failed to create cart", err)
	}
	return cart, nil
}

// AddItem adds a product to the customer's cart. If the product is already
// a line item, the quantities are merged; the stock check always uses the
// prospective total quantity for the product, not just the delta.
func (uc *CartUseCase) AddItem(ctx context.Context, customerID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, errors.NewValidation("quantity must be positive", nil)
	}

	product, err := uc.catalog.ActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, errors.NewInsufficientStock(product.Name)
	}

	cart, err := uc.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		cart = domain.NewCart(customerID)
	}

	if i := cart.ItemIndex(productID); i >= 0 {
		newQuantity := cart.Items[i].Quantity + quantity
		if product.StockQuantity < newQuantity {
			return nil, errors.NewInsufficientStock(product.Name)
		}
		cart.Items[i].Quantity = newQuantity
		cart.Items[i].TotalPrice = cart.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(newQuantity)))
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductCategory: product.Category,
			Quantity:        quantity,
			UnitPrice:       product.Price,
			TotalPrice:      product.Price.Mul(decimal.NewFromInt(int64(quantity))),
			ImageURL:        product.ImageURL,
		})
	}

	cart.RecalculateTotals()
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, errors.NewInternal("failed to save cart", err)
	}

	uc.log.WithContext(ctx).Info("cart item added",
		zap.String("customer_id", customerID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)

	return cart, nil
}

// UpdateItemQuantity rewrites the quantity of an existing line item.
// A quantity of zero or less removes the line item entirely.
func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, customerID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := uc.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		return nil, domain.NewCartItemNotFound(productID)
	}

	if quantity <= 0 {
		cart.RemoveItem(productID)
	} else {
		product, err := uc.catalog.ActiveProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product.StockQuantity < quantity {
			return nil, errors.NewInsufficientStock(product.Name)
		}

		cart.Items[i].Quantity = quantity
		cart.Items[i].TotalPrice = cart.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}

	cart.RecalculateTotals()
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, errors.NewInternal("failed to save cart", err)
	}

	return cart, nil
}

// RemoveItem drops a line item. Removing a product that is not in the
// cart is a no-op; a missing cart is still an error.
func (uc *CartUseCase) RemoveItem(ctx context.Context, customerID, productID string) (*domain.Cart, error) {
	cart, err := uc.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)
	cart.RecalculateTotals()

	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, errors.NewInternal("failed to save cart", err)
	}

	return cart, nil
}

// ClearCart deletes the customer's cart document entirely
func (uc *CartUseCase) ClearCart(ctx context.Context, customerID string) error {
	if err := uc.repo.DeleteByCustomerID(ctx, customerID); err != nil {
		return errors.NewInternal("failed to clear cart", err)
	}

	uc.log.WithContext(ctx).Info("cart cleared", zap.String("customer_id", customerID))
	return nil
}
