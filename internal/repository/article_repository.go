package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"newsportal/internal/model"
)

type articleRepository struct {
	db *gorm.DB
}

// articleTag holds one tag of an article so search can match tags one at a
// time. The article row keeps the ordered list for reads.
type articleTag struct {
	ArticleID string `gorm:"type:char(36);primaryKey"`
	Position  int    `gorm:"primaryKey;autoIncrement:false"`
	Tag       string `gorm:"type:text;not null"`
}

func (articleTag) TableName() string { return "article_tags" }

// replaceTags rewrites the tag rows of one article.
func replaceTags(tx *gorm.DB, articleID string, tags []string) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&articleTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]articleTag, 0, len(tags))
	for i, tag := range tags {
		rows = append(rows, articleTag{ArticleID: articleID, Position: i, Tag: tag})
	}
	return tx.Create(&rows).Error
}

// NewArticleRepository builds a GORM-backed article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	return translateGormError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, article.Tags)
	}))
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	article.UpdatedAt = time.Now()
	return translateGormError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(article).
			Select("Title", "Content", "Excerpt", "Category", "Image", "Tags", "IsPublished", "UpdatedAt").
			Updates(article)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return replaceTags(tx, article.ID, article.Tags)
	}))
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	return translateGormError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Article{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("article_id = ?", id).Delete(&articleTag{}).Error
	}))
}

func (r *articleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &article, nil
}

func (r *articleRepository) IncrementViews(ctx context.Context, id string) (*model.Article, error) {
	res := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *articleRepository) ListPublished(ctx context.Context, f ArticleFilter) ([]model.Article, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Article{}).Where("is_published = ?", true)
		if f.Category != "" {
			q = q.Where("category = ?", f.Category)
		}
		if f.AuthorID != "" {
			q = q.Where("author = ?", f.AuthorID)
		}
		if f.Search != "" {
			p := containsPattern(f.Search)
			q = q.Where("(LOWER(title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(content) LIKE ? ESCAPE '"+likeEscape+"'"+
				" OR EXISTS (SELECT 1 FROM article_tags WHERE article_tags.article_id = articles.id"+
				" AND LOWER(article_tags.tag) LIKE ? ESCAPE '"+likeEscape+"'))", p, p, p)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, translateGormError(err)
	}

	articles := []model.Article{}
	q := query().Order("created_at DESC").Order("id DESC").Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&articles).Error; err != nil {
		return nil, 0, translateGormError(err)
	}
	return articles, total, nil
}
