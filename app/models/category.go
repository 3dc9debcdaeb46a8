package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products in the catalogue.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"   json:"id"`
	Name        string             `bson:"name"            json:"name"`
	Slug        string             `bson:"slug"            json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"      json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"      json:"updatedAt"`
}
