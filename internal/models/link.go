package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Link is a simple name/URL bookmark stored in MongoDB.
type Link struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"linkName" bson:"linkName"`
	URL  string             `json:"linkURL" bson:"linkURL"`
}

// CreateLinkRequest defines the request body for creating a new link
type CreateLinkRequest struct {
	Name string `json:"linkName" validate:"required"`
	URL  string `json:"linkURL" validate:"required"`
}
