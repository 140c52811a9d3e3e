package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-grocery/internal/orders/domain"
	apperrors "go-grocery/pkg/errors"
)

type orderItemModel struct {
	ProductID   string `bson:"productId"`
	ProductName string `bson:"productName"`
	Quantity    int    `bson:"quantity"`
	UnitPrice   string `bson:"unitPrice"`
	TotalPrice  string `bson:"totalPrice"`
}

type orderModel struct {
	ID              string           `bson:"_id"`
	OrderNumber     string           `bson:"orderNumber"`
	CustomerID      string           `bson:"customerId"`
	CustomerName    string           `bson:"customerName,omitempty"`
	Items           []orderItemModel `bson:"items"`
	TotalAmount     string           `bson:"totalAmount"`
	Status          string           `bson:"status"`
	PaymentMethod   string           `bson:"paymentMethod,omitempty"`
	PaymentStatus   string           `bson:"paymentStatus"`
	DeliveryAddress string           `bson:"deliveryAddress,omitempty"`
	Notes           string           `bson:"notes,omitempty"`
	OrderDate       time.Time        `bson:"orderDate"`
	DeliveryDate    *time.Time       `bson:"deliveryDate,omitempty"`
	CreatedAt       time.Time        `bson:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt"`
}

// MongoOrderRepository implements OrderRepository using MongoDB
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates an order repository over the "orders" collection
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

// EnsureIndexes creates the customer and status lookup indexes
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// FindByID retrieves an order by ID
func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var model orderModel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", err)
	}
	return orderToDomain(&model)
}

// FindAll retrieves all orders, newest first
func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.findMany(ctx, bson.M{})
}

// FindByCustomerID retrieves a customer's orders, newest first
func (r *MongoOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return r.findMany(ctx, bson.M{"customerId": customerID})
}

// FindByStatus retrieves orders in a status, newest first
func (r *MongoOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.findMany(ctx, bson.M{"status": string(status)})
}

// Save upserts an order by ID
func (r *MongoOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	model := orderToModel(order)
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, model, opts)
	if err != nil {
		return apperrors.NewInternal("failed to save order", err)
	}
	return nil
}

func (r *MongoOrderRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list orders", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var model orderModel
		if err := cursor.Decode(&model); err != nil {
			return nil, apperrors.NewInternal("failed to decode order", err)
		}
		order, err := orderToDomain(&model)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate orders", err)
	}
	return orders, nil
}

func orderToModel(order *domain.Order) *orderModel {
	items := make([]orderItemModel, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemModel{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			TotalPrice:  item.TotalPrice.String(),
		}
	}
	return &orderModel{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Items:           items,
		TotalAmount:     order.TotalAmount.String(),
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		OrderDate:       order.OrderDate,
		DeliveryDate:    order.DeliveryDate,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func orderToDomain(model *orderModel) (*domain.Order, error) {
	totalAmount, err := decimal.NewFromString(model.TotalAmount)
	if err != nil {
		return nil, apperrors.NewInternal("malformed total in order document", err)
	}

	items := make([]domain.OrderItem, len(model.Items))
	for i, item := range model.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, apperrors.NewInternal("malformed unit price in order document", err)
		}
		totalPrice, err := decimal.NewFromString(item.TotalPrice)
		if err != nil {
			return nil, apperrors.NewInternal("malformed line total in order document", err)
		}
		items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
		}
	}

	return &domain.Order{
		ID:              model.ID,
		OrderNumber:     model.OrderNumber,
		CustomerID:      model.CustomerID,
		CustomerName:    model.CustomerName,
		Items:           items,
		TotalAmount:     totalAmount,
		Status:          domain.OrderStatusFromStored(model.Status),
		PaymentMethod:   model.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusFromStored(model.PaymentStatus),
		DeliveryAddress: model.DeliveryAddress,
		Notes:           model.Notes,
		OrderDate:       model.OrderDate,
		DeliveryDate:    model.DeliveryDate,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}, nil
}
