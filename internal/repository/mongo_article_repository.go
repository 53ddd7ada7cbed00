package repository

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"newsportal/internal/model"
)

type mongoArticleRepository struct {
	col *mongo.Collection
}

// NewMongoArticleRepository builds a MongoDB-backed article repository.
func NewMongoArticleRepository(db *mongo.Database) ArticleRepository {
	return &mongoArticleRepository{col: db.Collection(ColArticles)}
}

func (r *mongoArticleRepository) Create(ctx context.Context, article *model.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	now := mongoNow()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, article)
	return wrapMongoError(err)
}

func (r *mongoArticleRepository) Update(ctx context.Context, article *model.Article) error {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	article.UpdatedAt = mongoNow()
	return setByID(ctx, r.col, article.ID, bson.D{
		{Key: "title", Value: article.Title},
		{Key: "content", Value: article.Content},
		{Key: "excerpt", Value: article.Excerpt},
		{Key: "category", Value: article.Category},
		{Key: "image", Value: article.Image},
		{Key: "tags", Value: article.Tags},
		{Key: "isPublished", Value: article.IsPublished},
		{Key: "updatedAt", Value: article.UpdatedAt},
	})
}

func (r *mongoArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoArticleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	return findOne[model.Article](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *mongoArticleRepository) IncrementViews(ctx context.Context, id string) (*model.Article, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article model.Article
	err := r.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
		opts,
	).Decode(&article)
	if err != nil {
		return nil, wrapMongoError(err)
	}
	return &article, nil
}

func (r *mongoArticleRepository) ListPublished(ctx context.Context, f ArticleFilter) ([]model.Article, int64, error) {
	filter := bson.D{{Key: "isPublished", Value: true}}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.AuthorID != "" {
		filter = append(filter, bson.E{Key: "author", Value: f.AuthorID})
	}
	if f.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "content", Value: pattern}},
			bson.D{{Key: "tags", Value: pattern}},
		}})
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapMongoError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	articles, err := findMany[model.Article](ctx, r.col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
