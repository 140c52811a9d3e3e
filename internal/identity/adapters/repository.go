package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-grocery/internal/identity/domain"
	apperrors "go-grocery/pkg/errors"
)

type userModel struct {
	ID           string     `bson:"_id"`
	Username     string     `bson:"username"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"passwordHash"`
	FullName     string     `bson:"fullName,omitempty"`
	PhoneNumber  string     `bson:"phoneNumber,omitempty"`
	Roles        []string   `bson:"roles"`
	Enabled      bool       `bson:"enabled"`
	LastLoginAt  *time.Time `bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a user repository over the "users" collection
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique username and email indexes
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// FindByID retrieves a user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, domain.NewUserNotFound(id))
}

// FindByUsername retrieves a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, domain.NewUserNotFoundByUsername(username))
}

// FindByUsernameOrEmail retrieves a user whose username or email
// matches the login field
func (r *MongoUserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}
	return r.findOne(ctx, filter, domain.NewUserNotFoundByUsername(login))
}

// FindAll retrieves all users
func (r *MongoUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.NewInternal("failed to list users", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var model userModel
		if err := cursor.Decode(&model); err != nil {
			return nil, apperrors.NewInternal("failed to decode user", err)
		}
		users = append(users, userToDomain(&model))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate users", err)
	}
	return users, nil
}

// ExistsByUsername reports whether a user with the username exists
func (r *MongoUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

// ExistsByEmail reports whether a user with the email exists
func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

// Save upserts a user by ID
func (r *MongoUserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	model := userToModel(user)
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, model, opts)
	if err != nil {
		return apperrors.NewInternal("failed to save user", err)
	}
	return nil
}

// Delete removes a user by ID
func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewInternal("failed to delete user", err)
	}
	if result.DeletedCount == 0 {
		return domain.NewUserNotFound(id)
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.User, error) {
	var model userModel
	err := r.collection.FindOne(ctx, filter).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, apperrors.NewInternal("failed to get user", err)
	}
	return userToDomain(&model), nil
}

func (r *MongoUserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, apperrors.NewInternal("failed to check user existence", err)
	}
	return count > 0, nil
}

func userToModel(user *domain.User) *userModel {
	return &userModel{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		Roles:        user.Roles,
		Enabled:      user.Enabled,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userToDomain(model *userModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		FullName:     model.FullName,
		PhoneNumber:  model.PhoneNumber,
		Roles:        model.Roles,
		Enabled:      model.Enabled,
		LastLoginAt:  model.LastLoginAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
