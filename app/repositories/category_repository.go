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

// CategoryRepository handles database operations for Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	All(ctx context.Context, page, limit int) ([]models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveQuery("categories.insert", time.Now())

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := database.Col(database.Categories).InsertOne(ctx, category)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	defer metrics.ObserveQuery("categories.find_by_id", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoDocument
	}

	var category models.Category
	err = database.Col(database.Categories).FindOne(ctx, bson.M{"_id": oid}).Decode(&category)
	if err != nil {
		return nil, translateErr(err)
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	defer metrics.ObserveQuery("categories.find_by_name", time.Now())

	var category models.Category
	err := database.Col(database.Categories).FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		return nil, translateErr(err)
	}
	return &category, nil
}

func (r *categoryRepository) All(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	defer metrics.ObserveQuery("categories.list", time.Now())

	col := database.Col(database.Categories)

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	categories := make([]models.Category, 0, limit)
	if err := cur.All(ctx, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveQuery("categories.update", time.Now())

	category.UpdatedAt = time.Now().UTC()

	res, err := database.Col(database.Categories).ReplaceOne(ctx,
		bson.M{"_id": category.ID}, category)
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveQuery("categories.delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoDocument
	}

	res, err := database.Col(database.Categories).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *categoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	defer metrics.ObserveQuery("categories.exists", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	n, err := database.Col(database.Categories).CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
