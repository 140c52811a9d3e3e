package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-grocery/internal/cart/domain"
	apperrors "go-grocery/pkg/errors"
)

type cartItemModel struct {
	ProductID       string `bson:"productId"`
	ProductName     string `bson:"productName"`
	ProductCategory string `bson:"productCategory,omitempty"`
	Quantity        int    `bson:"quantity"`
	UnitPrice       string `bson:"unitPrice"`
	TotalPrice      string `bson:"totalPrice"`
	ImageURL        string `bson:"imageUrl,omitempty"`
}

type cartModel struct {
	ID          string          `bson:"_id"`
	CustomerID  string          `bson:"customerId"`
	Items       []cartItemModel `bson:"items"`
	TotalAmount string          `bson:"totalAmount"`
	TotalItems  int             `bson:"totalItems"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
}

// MongoCartRepository implements CartRepository using MongoDB.
// Carts are keyed by customer ID; the collection carries a unique
// index on customerId.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a cart repository over the "carts" collection
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

// EnsureIndexes creates the unique customer index
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByCustomerID retrieves a customer's cart
func (r *MongoCartRepository) FindByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error) {
	var model cartModel
	err := r.collection.FindOne(ctx, bson.M{"customerId": customerID}).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewCartNotFound(customerID)
		}
		return nil, apperrors.NewInternal("failed to get cart", err)
	}
	return toDomain(&model)
}

// Save upserts a cart, keyed by customer ID
func (r *MongoCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}

	model := toModel(cart)
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"customerId": cart.CustomerID}, model, opts)
	if err != nil {
		return apperrors.NewInternal("failed to save cart", err)
	}
	return nil
}

// DeleteByCustomerID removes a customer's cart; absent carts are a no-op
func (r *MongoCartRepository) DeleteByCustomerID(ctx context.Context, customerID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"customerId": customerID})
	if err != nil {
		return apperrors.NewInternal("failed to delete cart", err)
	}
	return nil
}

func toModel(cart *domain.Cart) *cartModel {
	items := make([]cartItemModel, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = cartItemModel{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductCategory: item.ProductCategory,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice.String(),
			TotalPrice:      item.TotalPrice.String(),
			ImageURL:        item.ImageURL,
		}
	}
	return &cartModel{
		ID:          cart.ID,
		CustomerID:  cart.CustomerID,
		Items:       items,
		TotalAmount: cart.TotalAmount.String(),
		TotalItems:  cart.TotalItems,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
}

func toDomain(model *cartModel) (*domain.Cart, error) {
	totalAmount, err := decimal.NewFromString(model.TotalAmount)
	if err != nil {
		return nil, apperrors.NewInternal("malformed total in cart document", err)
	}

	items := make([]domain.CartItem, len(model.Items))
	for i, item := range model.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, apperrors.NewInternal("malformed unit price in cart document", err)
		}
		totalPrice, err := decimal.NewFromString(item.TotalPrice)
		if err != nil {
			return nil, apperrors.NewInternal("malformed line total in cart document", err)
		}
		items[i] = domain.CartItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductCategory: item.ProductCategory,
			Quantity:        item.Quantity,
			UnitPrice:       unitPrice,
			TotalPrice:      totalPrice,
			ImageURL:        item.ImageURL,
		}
	}

	return &domain.Cart{
		ID:          model.ID,
		CustomerID:  model.CustomerID,
		Items:       items,
		TotalAmount: totalAmount,
		TotalItems:  model.TotalItems,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}
