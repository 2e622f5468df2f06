package repositories

import (
	"context"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LinkRepository defines the interface for link data operations.
// Reads and deletes of an unknown id succeed with a nil result rather
// than failing; that asymmetry with posts is deliberate.
type LinkRepository interface {
	GetAllLinks(ctx context.Context) ([]models.Link, error)
	GetLinkByID(ctx context.Context, id string) (*models.Link, error)
	CreateLink(ctx context.Context, link *models.Link) error
	UpdateLink(ctx context.Context, id string, fields bson.M) (*models.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

// MongoLinkRepository implements LinkRepository for MongoDB
type MongoLinkRepository struct {
	collection *mongo.Collection
}

// NewMongoLinkRepository creates a new MongoLinkRepository
func NewMongoLinkRepository(db *mongo.Database) *MongoLinkRepository {
	return &MongoLinkRepository{collection: db.Collection("links")}
}

// GetAllLinks retrieves every link from MongoDB
func (r *MongoLinkRepository) GetAllLinks(ctx context.Context) ([]models.Link, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, apperror.Store(err)
	}
	defer cursor.Close(ctx)

	links := []models.Link{}
	if err = cursor.All(ctx, &links); err != nil {
		return nil, apperror.Store(err)
	}
	return links, nil
}

// GetLinkByID retrieves a link by ID. An unknown or malformed id yields
// a nil link, not an error.
func (r *MongoLinkRepository) GetLinkByID(ctx context.Context, id string) (*models.Link, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var link models.Link
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperror.Store(err)
	}
	return &link, nil
}

// CreateLink creates a new link in MongoDB
func (r *MongoLinkRepository) CreateLink(ctx context.Context, link *models.Link) error {
	link.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		return apperror.Store(err)
	}
	return nil
}

// UpdateLink applies the given fields to a link as-is (no whitelist)
// and returns the updated document, or nil if the id is unknown.
func (r *MongoLinkRepository) UpdateLink(ctx context.Context, id string, fields bson.M) (*models.Link, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var link models.Link
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": fields}, opts).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperror.Store(err)
	}
	return &link, nil
}

// DeleteLink deletes a link by ID. Deleting an unknown id is treated as
// success.
func (r *MongoLinkRepository) DeleteLink(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return apperror.Store(err)
	}
	return nil
}
