package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
	"github.com/themirzaalibaig/server-ecommerce/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByAny(ctx context.Context, username, email, phone string) (string, bool, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveQuery("users.insert", time.Now())

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := database.Col(database.Users).InsertOne(ctx, user)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer metrics.ObserveQuery("users.find_by_id", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoDocument
	}

	var user models.User
	err = database.Col(database.Users).FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveQuery("users.find_by_email", time.Now())

	var user models.User
	err := database.Col(database.Users).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// ExistsByAny is the fast-path duplicate check before signup. It returns
// the first conflicting field name. The unique indexes remain the source
// of truth; a race here is resolved by the insert's duplicate-key error.
func (r *userRepository) ExistsByAny(ctx context.Context, username, email, phone string) (string, bool, error) {
	defer metrics.ObserveQuery("users.exists", time.Now())

	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}

	var existing models.User
	err := database.Col(database.Users).FindOne(ctx, filter).Decode(&existing)
	if err != nil {
		if translateErr(err) == ErrNoDocument {
			return "", false, nil
		}
		return "", false, err
	}

	switch {
	case existing.Username == username:
		return "username", true, nil
	case existing.Email == email:
		return "email", true, nil
	default:
		return "phone", true, nil
	}
}
