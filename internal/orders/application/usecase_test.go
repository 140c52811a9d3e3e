package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"go-grocery/internal/orders/domain"
	"go-grocery/internal/orders/ports"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// MockOrderRepository is an in-memory implementation of OrderRepository
type MockOrderRepository struct {
	orders map[string]*domain.Order
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	m.orders[order.ID] = &copied
	return nil
}

// MockProductCatalog tracks stock levels so tests can observe deductions
type MockProductCatalog struct {
	products map[string]*ports.ProductInfo
}

func NewMockProductCatalog() *MockProductCatalog {
	return &MockProductCatalog{
		products: map[string]*ports.ProductInfo{
			"p-1": {ID: "p-1", Name: "Bananas", Price: decimal.RequireFromString("2.50"), StockQuantity: 10},
			"p-2": {ID: "p-2", Name: "Milk", Price: decimal.RequireFromString("0.99"), StockQuantity: 3},
		},
	}
}

func (m *MockProductCatalog) ProductByID(ctx context.Context, productID string) (*ports.ProductInfo, error) {
	product, ok := m.products[productID]
	if !ok {
		return nil, errors.NewNotFound("product", productID)
	}
	copied := *product
	return &copied, nil
}

func (m *MockProductCatalog) AdjustStock(ctx context.Context, productID string, delta int) error {
	product, ok := m.products[productID]
	if !ok {
		return errors.NewNotFound("product", productID)
	}
	if product.StockQuantity+delta < 0 {
		return errors.NewInsufficientStock(productID)
	}
	product.StockQuantity += delta
	return nil
}

func (m *MockProductCatalog) stock(productID string) int {
	return m.products[productID].StockQuantity
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	created   []string
	cancelled []string
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	m.created = append(m.created, order.ID)
	return nil
}

func (m *MockEventPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	m.cancelled = append(m.cancelled, order.ID)
	return nil
}

func newTestUseCase() (*OrderUseCase, *MockOrderRepository, *MockProductCatalog, *MockEventPublisher) {
	repo := NewMockOrderRepository()
	catalog := NewMockProductCatalog()
	publisher := &MockEventPublisher{}
	log := logger.New("test", "debug", "json")
	return NewOrderUseCase(repo, catalog, publisher, log), repo, catalog, publisher
}

func TestCreateOrder_SnapshotsAndDeductsStock(t *testing.T) {
	useCase, _, catalog, publisher := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(order.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != "Bananas" {
		t.Errorf("expected snapshot name Bananas, got %s", item.ProductName)
	}
	if want := decimal.RequireFromString("7.50"); !item.TotalPrice.Equal(want) {
		t.Errorf("expected line total %s, got %s", want, item.TotalPrice)
	}
	if !order.TotalAmount.Equal(item.TotalPrice) {
		t.Errorf("expected order total %s, got %s", item.TotalPrice, order.TotalAmount)
	}
	if order.Status != domain.OrderStatusPending || order.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected fresh order in PENDING/PENDING, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Error("expected an order number to be assigned")
	}
	if catalog.stock("p-1") != 7 {
		t.Errorf("expected stock deducted to 7, got %d", catalog.stock("p-1"))
	}
	if len(publisher.created) != 1 {
		t.Errorf("expected one created event, got %d", len(publisher.created))
	}
}

func TestCreateOrder_ValidationIsAllOrNothing(t *testing.T) {
	useCase, _, catalog, _ := newTestUseCase()

	// p-2 fails the stock check, so p-1 must not be deducted either
	_, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items: []OrderItemInput{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 5},
		},
	})
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if catalog.stock("p-1") != 10 || catalog.stock("p-2") != 3 {
		t.Errorf("expected stock untouched, got p-1=%d p-2=%d",
			catalog.stock("p-1"), catalog.stock("p-2"))
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	useCase, _, catalog, _ := newTestUseCase()

	_, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items: []OrderItemInput{
			{ProductID: "p-1", Quantity: 1},
			{ProductID: "nope", Quantity: 1},
		},
	})
	if !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if catalog.stock("p-1") != 10 {
		t.Errorf("expected stock untouched, got %d", catalog.stock("p-1"))
	}
}

func TestCreateOrder_RejectsEmptyOrder(t *testing.T) {
	useCase, _, _, _ := newTestUseCase()

	_, err := useCase.CreateOrder(context.Background(), CreateOrderInput{CustomerID: "c-1"})
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus_FollowsMachine(t *testing.T) {
	useCase, _, _, _ := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := useCase.UpdateStatus(context.Background(), order.ID, "confirmed")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Status != domain.OrderStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", updated.Status)
	}

	// CONFIRMED -> DELIVERED skips states and must be rejected
	if _, err := useCase.UpdateStatus(context.Background(), order.ID, "DELIVERED"); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for illegal transition, got %v", err)
	}
}

func TestUpdateStatus_UnknownToken(t *testing.T) {
	useCase, repo, _, _ := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := useCase.UpdateStatus(context.Background(), order.ID, "FOO"); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for unknown token, got %v", err)
	}

	stored, err := repo.FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored.Status != domain.OrderStatusPending {
		t.Errorf("expected status unchanged at PENDING, got %s", stored.Status)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	useCase, _, _, _ := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := useCase.UpdatePaymentStatus(context.Background(), order.ID, "paid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected PAID, got %s", updated.PaymentStatus)
	}

	// PAID -> FAILED is not a legal move
	if _, err := useCase.UpdatePaymentStatus(context.Background(), order.ID, "FAILED"); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for illegal transition, got %v", err)
	}
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	useCase, _, catalog, publisher := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if catalog.stock("p-1") != 6 {
		t.Fatalf("expected stock 6 after order, got %d", catalog.stock("p-1"))
	}

	cancelled, err := useCase.CancelOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cancelled.Status != domain.OrderStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}
	if catalog.stock("p-1") != 10 {
		t.Errorf("expected stock restored to 10, got %d", catalog.stock("p-1"))
	}
	if len(publisher.cancelled) != 1 {
		t.Errorf("expected one cancelled event, got %d", len(publisher.cancelled))
	}
}

func TestCancelOrder_BlockedStates(t *testing.T) {
	useCase, repo, catalog, _ := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, token := range []string{"CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED"} {
		if _, err := useCase.UpdateStatus(context.Background(), order.ID, token); err != nil {
			t.Fatalf("expected no error moving to %s, got %v", token, err)
		}
	}

	if _, err := useCase.CancelOrder(context.Background(), order.ID); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error cancelling a delivered order, got %v", err)
	}
	if catalog.stock("p-1") != 8 {
		t.Errorf("expected stock untouched at 8, got %d", catalog.stock("p-1"))
	}

	stored, err := repo.FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored.Status != domain.OrderStatusDelivered {
		t.Errorf("expected status unchanged at DELIVERED, got %s", stored.Status)
	}
}

func TestCancelOrder_TwiceFails(t *testing.T) {
	useCase, _, catalog, _ := newTestUseCase()

	order, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: "c-1",
		Items:      []OrderItemInput{{ProductID: "p-1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := useCase.CancelOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := useCase.CancelOrder(context.Background(), order.ID); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error on repeat cancel, got %v", err)
	}
	if catalog.stock("p-1") != 10 {
		t.Errorf("expected stock restored exactly once, got %d", catalog.stock("p-1"))
	}
}

func TestListOrdersByStatus_RejectsUnknownToken(t *testing.T) {
	useCase, _, _, _ := newTestUseCase()

	if _, err := useCase.ListOrdersByStatus(context.Background(), "FOO"); !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
