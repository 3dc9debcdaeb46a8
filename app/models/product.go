package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product in the catalogue.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name"          json:"name"`
	Slug        string             `bson:"slug"          json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price"         json:"price"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Images      []string           `bson:"images"        json:"images"`
	Stock       int                `bson:"stock"         json:"stock"`
	CategoryID  primitive.ObjectID `bson:"category"      json:"category"`
	Size        []string           `bson:"size,omitempty" json:"size,omitempty"`
	InStock     bool               `bson:"in_stock"      json:"inStock"`
	TotalStock  int                `bson:"total_stock"   json:"totalStock"`
	TotalSold   int                `bson:"total_sold"    json:"totalSold"`
	UserID      primitive.ObjectID `bson:"user_id"       json:"userId"`
	CreatedAt   time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"    json:"updatedAt"`
}

// Recompute refreshes derived fields. Call before every save.
func (p *Product) Recompute() {
	p.InStock = p.Stock > 0
}
