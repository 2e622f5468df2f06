package repositories

import (
	"context"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	AppendToken(ctx context.Context, id, token string) error
	RemoveToken(ctx context.Context, id, token string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user in MongoDB. The password must already
// be hashed by the caller.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Tokens == nil {
		user.Tokens = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return apperror.Store(err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email. An absent email is reported
// as NotFound; callers on the login path translate it so the client
// cannot distinguish it from a wrong password.
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("user", email)
		}
		return nil, apperror.Store(err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by its hex object id.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("user", id)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("user", id)
		}
		return nil, apperror.Store(err)
	}
	return &user, nil
}

// AppendToken adds a session token to the user's active token list.
func (r *MongoUserRepository) AppendToken(ctx context.Context, id, token string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("user", id)
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"tokens": token}})
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}

// RemoveToken removes every entry equal to token from the user's active
// token list. Other tokens are left untouched.
func (r *MongoUserRepository) RemoveToken(ctx context.Context, id, token string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("user", id)
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"tokens": token}})
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}
