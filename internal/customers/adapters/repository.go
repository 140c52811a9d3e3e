package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-grocery/internal/customers/domain"
	apperrors "go-grocery/pkg/errors"
)

type customerModel struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	PhoneNumber    string    `bson:"phoneNumber"`
	ProductsBought []string  `bson:"productsBought,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// MongoCustomerRepository implements CustomerRepository using MongoDB
type MongoCustomerRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomerRepository creates a customer repository over the "customers" collection
func NewMongoCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{collection: db.Collection("customers")}
}

// EnsureIndexes creates the unique email and phone indexes
func (r *MongoCustomerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// FindByID retrieves a customer by ID
func (r *MongoCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id}, domain.NewCustomerNotFound(id))
}

// FindByEmail retrieves a customer by email
func (r *MongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email}, domain.NewCustomerNotFoundByEmail(email))
}

// FindAll retrieves all customers
func (r *MongoCustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.NewInternal("failed to list customers", err)
	}
	defer cursor.Close(ctx)

	var customers []*domain.Customer
	for cursor.Next(ctx) {
		var model customerModel
		if err := cursor.Decode(&model); err != nil {
			return nil, apperrors.NewInternal("failed to decode customer", err)
		}
		customers = append(customers, customerToDomain(&model))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate customers", err)
	}
	return customers, nil
}

// ExistsByEmail reports whether a customer with the email exists
func (r *MongoCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

// ExistsByPhoneNumber reports whether a customer with the phone number exists
func (r *MongoCustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	return r.exists(ctx, bson.M{"phoneNumber": phoneNumber})
}

// Save upserts a customer by ID
func (r *MongoCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.UpdatedAt = time.Now()

	model := customerToModel(customer)
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": customer.ID}, model, opts)
	if err != nil {
		return apperrors.NewInternal("failed to save customer", err)
	}
	return nil
}

// Delete removes a customer by ID
func (r *MongoCustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewInternal("failed to delete customer", err)
	}
	if result.DeletedCount == 0 {
		return domain.NewCustomerNotFound(id)
	}
	return nil
}

func (r *MongoCustomerRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.Customer, error) {
	var model customerModel
	err := r.collection.FindOne(ctx, filter).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, apperrors.NewInternal("failed to get customer", err)
	}
	return customerToDomain(&model), nil
}

func (r *MongoCustomerRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, apperrors.NewInternal("failed to check customer existence", err)
	}
	return count > 0, nil
}

func customerToModel(customer *domain.Customer) *customerModel {
	return &customerModel{
		ID:             customer.ID,
		Name:           customer.Name,
		Email:          customer.Email,
		PhoneNumber:    customer.PhoneNumber,
		ProductsBought: customer.ProductsBought,
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}
}

func customerToDomain(model *customerModel) *domain.Customer {
	return &domain.Customer{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		PhoneNumber:    model.PhoneNumber,
		ProductsBought: model.ProductsBought,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
