package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/pkg/auth"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
	"github.com/themirzaalibaig/server-ecommerce/pkg/slug"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedAdminUser inserts the bootstrap admin account if it does not exist.
// The password is a placeholder; rotate it on first login.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.Users)

	n, err := col.CountDocuments(ctx, bson.M{"email": "admin@storefront.local"})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hashed, err := auth.HashPassword("ChangeMe!2026")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = col.InsertOne(ctx, models.User{
		Username:  "admin",
		Email:     "admin@storefront.local",
		Phone:     "+10000000000",
		Password:  hashed,
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

var starterCategories = []struct {
	name, description string
}{
	{"Footwear", "Shoes, boots and sandals"},
	{"Apparel", "Clothing for every season"},
	{"Accessories", "Bags, belts and more"},
}

func SeedCategories(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.Categories)
	now := time.Now().UTC()

	for _, c := range starterCategories {
		n, err := col.CountDocuments(ctx, bson.M{"name": c.name})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		_, err = col.InsertOne(ctx, models.Category{
			Name:        c.name,
			Slug:        slug.Make(c.name),
			Description: c.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func SeedProducts(ctx context.Context, db *mongo.Database) error {
	var footwear models.Category
	err := db.Collection(database.Categories).
		FindOne(ctx, bson.M{"slug": "footwear"}).Decode(&footwear)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil // categories seeder did not run
		}
		return err
	}

	var admin models.User
	adminID := primitive.NilObjectID
	if err := db.Collection(database.Users).
		FindOne(ctx, bson.M{"role": models.RoleAdmin}).Decode(&admin); err == nil {
		adminID = admin.ID
	}

	col := db.Collection(database.Products)
	now := time.Now().UTC()

	samples := []models.Product{
		{
			Name:       "Trail Runner 2",
			Price:      129.99,
			Color:      "black",
			Images:     []string{"uploads/seed/trail-runner-2.jpg"},
			Stock:      25,
			Size:       []string{"8", "9", "10", "11"},
			TotalStock: 25,
		},
		{
			Name:       "City Loafer",
			Price:      89.50,
			Color:      "brown",
			Images:     []string{"uploads/seed/city-loafer.jpg"},
			Stock:      0,
			Size:       []string{"9", "10"},
			TotalStock: 10,
			TotalSold:  10,
		},
	}

	for _, p := range samples {
		p.Slug = slug.Make(p.Name)

		n, err := col.CountDocuments(ctx, bson.M{"slug": p.Slug})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		p.CategoryID = footwear.ID
		p.UserID = adminID
		p.CreatedAt = now
		p.UpdatedAt = now
		p.Recompute()

		if _, err := col.InsertOne(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
