package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"newsportal/internal/auth"
	apperrors "newsportal/internal/errors"
	"newsportal/internal/metrics"
	"newsportal/internal/model"
	"newsportal/internal/repository"
)

const (
	// DefaultPageLimit is used when the requested limit is missing or below 1.
	DefaultPageLimit = 10
	// TopArticlesCount is the size of the homepage strip.
	TopArticlesCount = 6
)

var errNewsNotFound = apperrors.NotFound("News not found.")

// ArticleInput is the client-supplied part of an article.
type ArticleInput struct {
	Title       string
	Content     string
	Excerpt     string
	Category    string
	Image       string
	Tags        []string
	IsPublished *bool
}

// ListQuery selects a page of published articles.
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	AuthorID string
	Search   string
}

// ArticlePage is one page of a listing.
type ArticlePage struct {
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Pages int                 `json:"pages"`
	News  []model.ArticleView `json:"news"`
}

// ArticleService implements browsing and authoring of articles.
type ArticleService interface {
	List(ctx context.Context, q ListQuery) (*ArticlePage, error)
	Top(ctx context.Context) ([]model.ArticleView, error)
	// Get returns an article and counts the fetch as a view.
	Get(ctx context.Context, id string) (*model.ArticleView, error)
	Create(ctx context.Context, identity auth.Identity, in ArticleInput) (*model.ArticleView, error)
	// Update replaces every editable field with in. Omitted fields are cleared.
	Update(ctx context.Context, identity auth.Identity, id string, in ArticleInput) (*model.ArticleView, error)
	Delete(ctx context.Context, identity auth.Identity, id string) error
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	metrics  *metrics.Metrics
}

// NewArticleService builds an ArticleService. m may be nil.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, m *metrics.Metrics) ArticleService {
	return &articleService{articles: articles, users: users, metrics: m}
}

func (s *articleService) List(ctx context.Context, q ListQuery) (*ArticlePage, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	result := &ArticlePage{Page: page, News: []model.ArticleView{}}

	category := model.Category(q.Category)
	if category != "" && !category.Valid() {
		return result, nil
	}

	// Pages past the addressable range read as an empty page.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	articles, total, err := s.articles.ListPublished(ctx, repository.ArticleFilter{
		Category: category,
		AuthorID: q.AuthorID,
		Search:   strings.TrimSpace(q.Search),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	result.Total = total
	result.Pages = int(total / int64(limit))
	if total%int64(limit) != 0 {
		result.Pages++
	}
	result.News, err = s.withAuthors(ctx, articles, model.AuthorEmail)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *articleService) Top(ctx context.Context) ([]model.ArticleView, error) {
	articles, _, err := s.articles.ListPublished(ctx, repository.ArticleFilter{Limit: TopArticlesCount})
	if err != nil {
		return nil, fmt.Errorf("list top news: %w", err)
	}
	return s.withAuthors(ctx, articles, model.AuthorEmail)
}

func (s *articleService) Get(ctx context.Context, id string) (*model.ArticleView, error) {
	article, err := s.articles.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNewsNotFound
		}
		return nil, fmt.Errorf("get news: %w", err)
	}
	s.metrics.ArticleViewed()

	view := model.NewArticleView(*article, s.authorOf(ctx, article.AuthorID), model.AuthorEmail|model.AuthorBio)
	return &view, nil
}

func (s *articleService) Create(ctx context.Context, identity auth.Identity, in ArticleInput) (*model.ArticleView, error) {
	if identity.UserID == "" {
		return nil, apperrors.Unauthenticated("Not authorized, token missing or invalid.")
	}

	article := &model.Article{
		AuthorID:    identity.UserID,
		IsPublished: true,
	}
	applyInput(article, in)
	if err := validateArticle(article); err != nil {
		return nil, err
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	s.metrics.ArticleCreated(string(article.Category))

	view := model.NewArticleView(*article, s.authorOf(ctx, article.AuthorID), 0)
	return &view, nil
}

func (s *articleService) Update(ctx context.Context, identity auth.Identity, id string, in ArticleInput) (*model.ArticleView, error) {
	article, err := s.findModifiable(ctx, identity, id, "Not authorized to update this news.")
	if err != nil {
		return nil, err
	}

	applyInput(article, in)
	article.IsPublished = in.IsPublished != nil && *in.IsPublished
	if err := validateArticle(article); err != nil {
		return nil, err
	}

	if err := s.articles.Update(ctx, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNewsNotFound
		}
		return nil, fmt.Errorf("update news: %w", err)
	}

	view := model.NewArticleView(*article, s.authorOf(ctx, article.AuthorID), 0)
	return &view, nil
}

func (s *articleService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if _, err := s.findModifiable(ctx, identity, id, "Not authorized to delete this news."); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNewsNotFound
		}
		return fmt.Errorf("delete news: %w", err)
	}
	s.metrics.ArticleDeleted()
	return nil
}

// findModifiable loads an article and checks that identity may change it.
func (s *articleService) findModifiable(ctx context.Context, identity auth.Identity, id, forbidden string) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNewsNotFound
		}
		return nil, fmt.Errorf("find news: %w", err)
	}
	if !auth.CanModify(identity, article) {
		return nil, apperrors.Forbidden(forbidden)
	}
	return article, nil
}

// authorOf looks up an author for embedding. A failed lookup degrades to an
// id-only projection since the article itself was already read or written.
func (s *articleService) authorOf(ctx context.Context, id string) *model.User {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// withAuthors embeds author projections using one batched lookup.
func (s *articleService) withAuthors(ctx context.Context, articles []model.Article, fields model.AuthorFields) ([]model.ArticleView, error) {
	views := make([]model.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(articles))
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.AuthorID]; ok {
			continue
		}
		seen[a.AuthorID] = struct{}{}
		ids = append(ids, a.AuthorID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for _, a := range articles {
		views = append(views, model.NewArticleView(a, byID[a.AuthorID], fields))
	}
	return views, nil
}

func applyInput(article *model.Article, in ArticleInput) {
	article.Title = strings.TrimSpace(in.Title)
	article.Content = in.Content
	article.Excerpt = strings.TrimSpace(in.Excerpt)
	article.Category = model.Category(strings.TrimSpace(in.Category))
	article.Image = strings.TrimSpace(in.Image)

	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}
	article.Tags = tags

	if article.Excerpt == "" && article.Content != "" {
		article.Excerpt = DeriveExcerpt(article.Content)
	}
}

func validateArticle(article *model.Article) error {
	if article.Title == "" || article.Content == "" || article.Category == "" {
		return apperrors.InvalidInput("Title, content, and category are required.")
	}
	if !article.Category.Valid() {
		return apperrors.InvalidInput("Invalid category.")
	}
	if utf8.RuneCountInString(article.Title) > model.MaxTitleLength {
		return apperrors.InvalidInput("Title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(article.Excerpt) > model.MaxExcerptLength {
		return apperrors.InvalidInput("Excerpt cannot exceed 300 characters")
	}
	return nil
}
