package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"newsportal/internal/model"
)

type mongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository builds a MongoDB-backed user repository.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{col: db.Collection(ColUsers)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	now := mongoNow()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, user)
	return wrapMongoError(err)
}

func (r *mongoUserRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = mongoNow()
	return setByID(ctx, r.col, user.ID, bson.D{
		{Key: "name", Value: user.Name},
		{Key: "bio", Value: user.Bio},
		{Key: "avatar", Value: user.Avatar},
		{Key: "role", Value: user.Role},
		{Key: "updatedAt", Value: user.UpdatedAt},
	})
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return setByID(ctx, r.col, id, bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updatedAt", Value: mongoNow()},
	})
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	return findMany[model.User](ctx, r.col, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// mongoNow matches the millisecond precision BSON dates are stored with.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
