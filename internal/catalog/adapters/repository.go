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

	"go-grocery/internal/catalog/domain"
	apperrors "go-grocery/pkg/errors"
)

// productModel is the persistence shape of a product document.
// Prices are stored as decimal strings.
type productModel struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description,omitempty"`
	Category      string    `bson:"category"`
	Price         string    `bson:"price"`
	StockQuantity int       `bson:"stockQuantity"`
	ImageURL      string    `bson:"imageUrl,omitempty"`
	Active        bool      `bson:"active"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// MongoProductRepository implements ProductRepository using MongoDB
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a product repository over the
// "products" collection
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

// FindByID retrieves a product by ID regardless of its active flag
func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

// FindActiveByID retrieves an active product by ID
func (r *MongoProductRepository) FindActiveByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id, "active": true}, id)
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M, id string) (*domain.Product, error) {
	var model productModel
	err := r.collection.FindOne(ctx, filter).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get product", err)
	}
	return toDomain(&model)
}

// FindAllActive retrieves all active products
func (r *MongoProductRepository) FindAllActive(ctx context.Context) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"active": true})
}

// FindActiveByCategory retrieves active products in a category
func (r *MongoProductRepository) FindActiveByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"category": category, "active": true})
}

// Search retrieves active products matching the term across name,
// description and category, case-insensitively
func (r *MongoProductRepository) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	regex := bson.M{"$regex": term, "$options": "i"}
	filter := bson.M{
		"active": true,
		"$or": []bson.M{
			{"name": regex},
			{"description": regex},
			{"category": regex},
		},
	}
	return r.findMany(ctx, filter)
}

// FindLowStock retrieves active products with stock below threshold
func (r *MongoProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"active": true, "stockQuantity": bson.M{"$lt": threshold}})
}

func (r *MongoProductRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list products", err)
	}
	defer cursor.Close(ctx)

	products := make([]*domain.Product, 0)
	for cursor.Next(ctx) {
		var model productModel
		if err := cursor.Decode(&model); err != nil {
			return nil, apperrors.NewInternal("failed to decode product", err)
		}
		product, err := toDomain(&model)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate products", err)
	}
	return products, nil
}

// Save upserts a product, assigning an ID on first save
func (r *MongoProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	model := toModel(product)
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": model.ID}, model, opts)
	if err != nil {
		return apperrors.NewInternal("failed to save product", err)
	}
	return nil
}

// AdjustStock atomically changes stock by delta. The filter requires enough
// stock to absorb a negative delta, so the quantity can never go below zero
// even under concurrent orders.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["stockQuantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stockQuantity": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result := r.collection.FindOneAndUpdate(ctx, filter, update)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the product is gone or the decrement would go negative
			if _, lookupErr := r.FindByID(ctx, id); lookupErr != nil {
				return lookupErr
			}
			return apperrors.NewInsufficientStock(id)
		}
		return apperrors.NewInternal("failed to adjust stock", err)
	}
	return nil
}

func toModel(product *domain.Product) *productModel {
	return &productModel{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Price:         product.Price.String(),
		StockQuantity: product.StockQuantity,
		ImageURL:      product.ImageURL,
		Active:        product.Active,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toDomain(model *productModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, apperrors.NewInternal("malformed price in product document", err)
	}
	return &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		Description:   model.Description,
		Category:      model.Category,
		Price:         price,
		StockQuantity: model.StockQuantity,
		ImageURL:      model.ImageURL,
		Active:        model.Active,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}, nil
}
