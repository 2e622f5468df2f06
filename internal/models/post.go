package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAuthor is used when a post is created without an author field.
const DefaultAuthor = "Avudaiappan"

// Post represents a blog post stored in MongoDB. The image is kept
// inline as raw bytes, exactly as uploaded.
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Author      string             `json:"author" bson:"author"`
	PublishedAt time.Time          `json:"publishedAt" bson:"publishedAt"`
	Tags        string             `json:"tags" bson:"tags"`
	Image       []byte             `json:"image" bson:"image"`
}

// postFields is the exact set of keys accepted on post create and
// update. Anything else in the input is rejected before the store is
// touched.
var postFields = map[string]bool{
	"title":       true,
	"description": true,
	"publishedAt": true,
	"author":      true,
	"tags":        true,
	"image":       true,
}

// InvalidPostFields returns the keys that are not part of the post
// field whitelist. An empty result means the input passes.
func InvalidPostFields(keys []string) []string {
	var invalid []string
	for _, k := range keys {
		if !postFields[k] {
			invalid = append(invalid, k)
		}
	}
	return invalid
}

// CreatePostRequest holds the multipart form fields for creating a
// post. The image arrives as a separate file part and is validated by
// the handler.
type CreatePostRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Tags        string `form:"tags" validate:"required"`
	Author      string `form:"author"`
	PublishedAt string `form:"publishedAt"`
}
