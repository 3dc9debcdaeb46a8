// Package database owns the MongoDB connection and index bootstrap.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/themirzaalibaig/server-ecommerce/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Collection names.
const (
	Users      = "users"
	Categories = "categories"
	Products   = "products"
	Logs       = "request_logs"
)

// Connect opens the Mongo client and pings the deployment.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDB())
	return nil
}

// Disconnect closes the client. Safe to call with a nil client.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	if err := Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	Client = nil
	DB = nil
	return nil
}

// Ping verifies the connection is alive. Used by the health endpoint.
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("database: not connected")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return Client.Ping(pingCtx, nil)
}

// Col returns a handle to the named collection.
func Col(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the unique and query indexes the application relies
// on. Unique indexes are the source of truth for all duplicate checks; the
// index names are parsed out of duplicate-key errors to produce field-scoped
// validation messages, so they must stay in the uniq_<field> form.
func EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		Users: {
			uniqueIndex("uniq_username", "username"),
			uniqueIndex("uniq_email", "email"),
			uniqueIndex("uniq_phone", "phone"),
		},
		Categories: {
			uniqueIndex("uniq_name", "name"),
			uniqueIndex("uniq_slug", "slug"),
		},
		Products: {
			uniqueIndex("uniq_slug", "slug"),
			plainIndex("idx_category", "category"),
			plainIndex("idx_price", "price"),
		},
	}

	for col, models := range specs {
		if _, err := DB.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: indexes for %s: %w", col, err)
		}
	}
	return nil
}

func uniqueIndex(name, field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

func plainIndex(name, field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name),
	}
}
