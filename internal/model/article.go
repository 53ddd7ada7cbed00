package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is one of the fixed article sections.
type Category string

const (
	CategoryPolitics      Category = "Politics"
	CategoryTechnology    Category = "Technology"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
	CategoryBusiness      Category = "Business"
	CategoryHealth        Category = "Health"
	CategoryScience       Category = "Science"
	CategoryWorld         Category = "World"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryEducation     Category = "Education"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPolitics,
	CategoryTechnology,
	CategorySports,
	CategoryEntertainment,
	CategoryBusiness,
	CategoryHealth,
	CategoryScience,
	CategoryWorld,
	CategoryLifestyle,
	CategoryEducation,
}

// Valid reports whether c is a member of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Field limits enforced on articles and profiles.
const (
	MaxTitleLength   = 200
	MaxExcerptLength = 300
	MaxBioLength     = 200
)

// Article is a news item owned by exactly one user.
type Article struct {
	ID          string    `json:"_id" bson:"_id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" bson:"title" gorm:"size:200;not null"`
	Content     string    `json:"content" bson:"content" gorm:"type:text;not null"`
	Excerpt     string    `json:"excerpt" bson:"excerpt" gorm:"size:300"`
	Category    Category  `json:"category" bson:"category" gorm:"size:32;not null;index"`
	Image       string    `json:"image" bson:"image" gorm:"size:1024"`
	AuthorID    string    `json:"-" bson:"author" gorm:"column:author;type:char(36);not null;index"`
	Tags        []string  `json:"tags" bson:"tags" gorm:"serializer:json;type:text"`
	Views       int64     `json:"views" bson:"views" gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" bson:"isPublished" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ArticleView is an article with its author projection embedded, as served to clients.
type ArticleView struct {
	Article
	Author *Author `json:"author"`
}

// NewArticleView pairs a with the projection of its author. A missing author
// degrades to a projection carrying only the id.
func NewArticleView(a Article, author *User, fields AuthorFields) ArticleView {
	if a.Tags == nil {
		a.Tags = []string{}
	}
	view := ArticleView{Article: a}
	if author != nil {
		view.Author = author.Projection(fields)
	} else {
		view.Author = &Author{ID: a.AuthorID}
	}
	return view
}
