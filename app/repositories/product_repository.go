package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
	"github.com/themirzaalibaig/server-ecommerce/pkg/metrics"
)

// ProductFilter holds the optional listing filters. Every set clause is
// ANDed into the query.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sizes    []string
	InStock  *bool
}

// Query builds the Mongo filter document. Unset fields contribute nothing.
func (f ProductFilter) Query() bson.M {
	q := bson.M{}

	if f.Category != "" {
		if oid, err := primitive.ObjectIDFromHex(f.Category); err == nil {
			q["category"] = oid
		} else {
			// Unmatchable: an invalid id should select nothing, not everything.
			q["category"] = primitive.NilObjectID
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}

	if len(f.Sizes) > 0 {
		q["size"] = bson.M{"$in": f.Sizes}
	}

	if f.InStock != nil {
		q["in_stock"] = *f.InStock
	}

	return q
}

// ProductRepository handles database operations for Product.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter, page, limit int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct{}

func NewProductRepository() ProductRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveQuery("products.insert", time.Now())

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := database.Col(database.Products).InsertOne(ctx, product)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	defer metrics.ObserveQuery("products.find_by_id", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoDocument
	}

	var product models.Product
	err = database.Col(database.Products).FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	defer metrics.ObserveQuery("products.find_by_slug", time.Now())

	var product models.Product
	err := database.Col(database.Products).FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, page, limit int) ([]models.Product, int64, error) {
	defer metrics.ObserveQuery("products.list", time.Now())

	col := database.Col(database.Products)
	query := filter.Query()

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	products := make([]models.Product, 0, limit)
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveQuery("products.update", time.Now())

	product.UpdatedAt = time.Now().UTC()

	res, err := database.Col(database.Products).ReplaceOne(ctx,
		bson.M{"_id": product.ID}, product)
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveQuery("products.delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoDocument
	}

	res, err := database.Col(database.Products).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
