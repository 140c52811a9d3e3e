package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-grocery/internal/orders/domain"
	"go-grocery/internal/orders/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// OrderUseCase handles order business logic
type OrderUseCase struct {
	repo      ports.OrderRepository
	catalog   ports.ProductCatalog
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case. The publisher may be
// nil, in which case lifecycle events are skipped.
func NewOrderUseCase(repo ports.OrderRepository, catalog ports.ProductCatalog, publisher ports.EventPublisher, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		log:       log,
	}
}

// OrderItemInput identifies a product and the quantity ordered
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries the fields needed to place an order
type CreateOrderInput struct {
	CustomerID      string
	CustomerName    string
	Items           []OrderItemInput
	PaymentMethod   string
	DeliveryAddress string
	Notes           string
	DeliveryDate    *time.Time
}

// CreateOrder validates every line against the catalog, snapshots names
// and prices, deducts stock and persists the order. Validation is
// all-or-nothing: no stock is touched until every line has passed.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, errors.NewValidation("quantity must be positive", nil)
		}

		product, err := uc.catalog.ProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.StockQuantity < line.Quantity {
			return nil, errors.NewValidation("insufficient stock for product: "+product.Name, nil)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
		total = total.Add(lineTotal)
	}

	for _, item := range items {
		if err := uc.catalog.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &domain.Order{
		ID:              uuid.New().String(),
		OrderNumber:     newOrderNumber(),
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		DeliveryAddress: input.DeliveryAddress,
		Notes:           input.Notes,
		OrderDate:       now,
		DeliveryDate:    input.DeliveryDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to create order", err)
	}

	uc.log.WithContext(ctx).Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", order.CustomerID),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Warn("failed to publish order created event",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.repo.FindByID(ctx, id)
}

// ListOrders retrieves all orders
func (uc *OrderUseCase) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return uc.repo.FindAll(ctx)
}

// ListOrdersByCustomer retrieves orders placed by a customer
func (uc *OrderUseCase) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return uc.repo.FindByCustomerID(ctx, customerID)
}

// ListOrdersByStatus retrieves orders in the given status.
// The token is case-insensitive and must name a known status.
func (uc *OrderUseCase) ListOrdersByStatus(ctx context.Context, token string) ([]*domain.Order, error) {
	status, err := domain.ParseOrderStatus(token)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByStatus(ctx, status)
}

// UpdateStatus moves an order along the fulfilment status machine
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, token string) (*domain.Order, error) {
	target, err := domain.ParseOrderStatus(token)
	if err != nil {
		return nil, err
	}

	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, domain.NewIllegalTransition(string(order.Status), string(target))
	}

	order.Status = target
	order.UpdatedAt = time.Now()

	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to update order status", err)
	}

	uc.log.WithContext(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(target)),
	)

	return order, nil
}

// UpdatePaymentStatus moves an order along the payment status machine
func (uc *OrderUseCase) UpdatePaymentStatus(ctx context.Context, id, token string) (*domain.Order, error) {
	target, err := domain.ParsePaymentStatus(token)
	if err != nil {
		return nil, err
	}

	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.PaymentStatus.CanTransitionTo(target) {
		return nil, domain.NewIllegalTransition(string(order.PaymentStatus), string(target))
	}

	order.PaymentStatus = target
	order.UpdatedAt = time.Now()

	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to update payment status", err)
	}

	uc.log.WithContext(ctx).Info("order payment status updated",
		zap.String("order_id", id),
		zap.String("payment_status", string(target)),
	)

	return order, nil
}

// CancelOrder cancels an order and restores the reserved stock.
// Delivered and already-cancelled orders cannot be cancelled.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanCancel() {
		return nil, domain.NewCancelNotAllowed(string(order.Status))
	}

	for _, item := range order.Items {
		if err := uc.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	order.Cancel()

	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to cancel order", err)
	}

	uc.log.WithContext(ctx).Info("order cancelled",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
	)

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCancelled(ctx, order); err != nil {
			uc.log.WithContext(ctx).Warn("failed to publish order cancelled event",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}
