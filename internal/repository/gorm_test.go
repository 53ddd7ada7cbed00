package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsportal/internal/model"
)

// newGormStores opens an isolated in-memory SQLite database per test.
func newGormStores(t *testing.T) *Stores {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	stores, err := NewGormStores(gormDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })
	return stores
}

func TestGormStores(t *testing.T) {
	runStoreSuite(t, newGormStores)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%go%", containsPattern("Go"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%snake!_case%", containsPattern("snake_case"))
	assert.Equal(t, "%wow!!%", containsPattern("wow!"))
}

// runStoreSuite exercises the repository contract against any backing store.
func runStoreSuite(t *testing.T, open func(t *testing.T) *Stores) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("create and find article", func(t *testing.T) { testArticleCRUD(t, open(t)) })
	t.Run("increment views", func(t *testing.T) { testIncrementViews(t, open(t)) })
	t.Run("update replaces editable fields", func(t *testing.T) { testUpdateReplaces(t, open(t)) })
	t.Run("list excludes unpublished", func(t *testing.T) { testListExcludesUnpublished(t, open(t)) })
	t.Run("list pages cover result set", func(t *testing.T) { testListPagination(t, open(t)) })
	t.Run("list search", func(t *testing.T) { testListSearch(t, open(t)) })
}

func testUsers(t *testing.T, s *Stores) {
	ctx := context.Background()

	user := &model.User{ID: uuid.NewString(), Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users.Create(ctx, user))
	assert.Equal(t, model.RoleUser, user.Role)

	dup := &model.User{ID: uuid.NewString(), Name: "Other", Email: "ada@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, s.Users.Create(ctx, dup), ErrDuplicate)

	got, err := s.Users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got.Bio = "writer"
	got.Avatar = "https://example.com/a.png"
	got.Role = model.RoleAdmin
	require.NoError(t, s.Users.Update(ctx, got))
	require.NoError(t, s.Users.UpdatePassword(ctx, user.ID, "new-hash"))

	got, err = s.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer", got.Bio)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, "new-hash", got.PasswordHash)

	users, err := s.Users.FindByIDs(ctx, []string{user.ID, uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = s.Users.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Users.UpdatePassword(ctx, uuid.NewString(), "x"), ErrNotFound)
}

func newArticle(author string, createdAt time.Time, published bool) *model.Article {
	return &model.Article{
		ID:          uuid.NewString(),
		Title:       "Title " + createdAt.Format(time.RFC3339),
		Content:     "Body",
		Category:    model.CategoryTechnology,
		AuthorID:    author,
		Tags:        []string{"news"},
		IsPublished: published,
		CreatedAt:   createdAt,
	}
}

func testArticleCRUD(t *testing.T, s *Stores) {
	ctx := context.Background()
	author := uuid.NewString()

	a := newArticle(author, time.Now().UTC().Truncate(time.Millisecond), true)
	a.Tags = []string{"go", "go"}
	require.NoError(t, s.Articles.Create(ctx, a))

	got, err := s.Articles.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, author, got.AuthorID)
	assert.Equal(t, []string{"go", "go"}, got.Tags)
	assert.Equal(t, int64(0), got.Views)
	assert.True(t, got.IsPublished)

	require.NoError(t, s.Articles.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Articles.Delete(ctx, a.ID), ErrNotFound)
	_, err = s.Articles.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func testIncrementViews(t *testing.T, s *Stores) {
	ctx := context.Background()
	a := newArticle(uuid.NewString(), time.Now().UTC(), true)
	require.NoError(t, s.Articles.Create(ctx, a))

	const n = 7
	var last *model.Article
	for i := 0; i < n; i++ {
		var err error
		last, err = s.Articles.IncrementViews(ctx, a.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(n), last.Views)

	_, err := s.Articles.IncrementViews(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func testUpdateReplaces(t *testing.T, s *Stores) {
	ctx := context.Background()
	author := uuid.NewString()
	a := newArticle(author, time.Now().UTC(), true)
	a.Image = "https://example.com/i.png"
	require.NoError(t, s.Articles.Create(ctx, a))

	_, err := s.Articles.IncrementViews(ctx, a.ID)
	require.NoError(t, err)

	// stale copy with views 0, a different author and cleared optional fields
	edit := *a
	edit.Title = "Edited"
	edit.Tags = nil
	edit.Image = ""
	edit.IsPublished = false
	edit.AuthorID = uuid.NewString()
	edit.Views = 0
	require.NoError(t, s.Articles.Update(ctx, &edit))

	got, err := s.Articles.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.Image)
	assert.False(t, got.IsPublished)
	assert.Equal(t, author, got.AuthorID)
	assert.Equal(t, int64(1), got.Views)

	missing := newArticle(author, time.Now().UTC(), true)
	assert.ErrorIs(t, s.Articles.Update(ctx, missing), ErrNotFound)
}

func testListExcludesUnpublished(t *testing.T, s *Stores) {
	ctx := context.Background()
	author := uuid.NewString()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	published := newArticle(author, base, true)
	hidden := newArticle(author, base.Add(time.Minute), false)
	hidden.Tags = []string{"news", "secret"}
	require.NoError(t, s.Articles.Create(ctx, published))
	require.NoError(t, s.Articles.Create(ctx, hidden))

	filters := []ArticleFilter{
		{Limit: 10},
		{Limit: 10, Category: model.CategoryTechnology},
		{Limit: 10, AuthorID: author},
		{Limit: 10, Search: "secret"},
		{Limit: 10, Search: "Body"},
	}
	for _, f := range filters {
		articles, _, err := s.Articles.ListPublished(ctx, f)
		require.NoError(t, err)
		for _, a := range articles {
			assert.NotEqual(t, hidden.ID, a.ID, "filter %+v returned an unpublished article", f)
		}
	}
}

func testListPagination(t *testing.T, s *Stores) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var expected []string
	for i := 0; i < 23; i++ {
		a := newArticle(uuid.NewString(), base.Add(time.Duration(i)*time.Minute), true)
		require.NoError(t, s.Articles.Create(ctx, a))
		expected = append([]string{a.ID}, expected...)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Articles.Create(ctx, newArticle(uuid.NewString(), base.Add(time.Hour), false)))
	}

	const limit = 5
	var seen []string
	for page := 1; ; page++ {
		articles, total, err := s.Articles.ListPublished(ctx, ArticleFilter{Offset: (page - 1) * limit, Limit: limit})
		require.NoError(t, err)
		assert.Equal(t, int64(23), total)
		assert.LessOrEqual(t, len(articles), limit)
		if len(articles) == 0 {
			break
		}
		for _, a := range articles {
			seen = append(seen, a.ID)
		}
	}
	assert.Equal(t, expected, seen)
}

func testListSearch(t *testing.T, s *Stores) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tagged := newArticle(uuid.NewString(), base, true)
	tagged.Title = "Weekly roundup"
	tagged.Content = "Nothing here"
	tagged.Tags = []string{"politics", "Golang"}

	titled := newArticle(uuid.NewString(), base.Add(time.Minute), true)
	titled.Title = "Elections 2024"
	titled.Content = "Turnout was 100% in one district"
	titled.Tags = []string{}

	symbols := newArticle(uuid.NewString(), base.Add(2*time.Minute), true)
	symbols.Title = "Quarterly report"
	symbols.Content = "Budget figures"
	symbols.Tags = []string{"R&D", "alpha", "beta"}

	require.NoError(t, s.Articles.Create(ctx, tagged))
	require.NoError(t, s.Articles.Create(ctx, titled))
	require.NoError(t, s.Articles.Create(ctx, symbols))

	tests := []struct {
		search   string
		expected []string
	}{
		{"golang", []string{tagged.ID}},
		{"ELECTIONS", []string{titled.ID}},
		{"100%", []string{titled.ID}},
		{"%", []string{titled.ID}},
		{"e.ections", nil},
		{"missing", nil},
		{"r&d", []string{symbols.ID}},
		{"R&D", []string{symbols.ID}},
		{"alpha", []string{symbols.ID}},
		{`a","b`, nil},
		{`"`, nil},
		{"[", nil},
		{`","`, nil},
	}
	for _, tt := range tests {
		assertSearch(t, s, tt.search, tt.expected)
	}

	tagged.Tags = []string{"rust"}
	require.NoError(t, s.Articles.Update(ctx, tagged))
	assertSearch(t, s, "golang", nil)
	assertSearch(t, s, "rust", []string{tagged.ID})

	require.NoError(t, s.Articles.Delete(ctx, symbols.ID))
	assertSearch(t, s, "alpha", nil)
}

func assertSearch(t *testing.T, s *Stores, search string, expected []string) {
	t.Helper()
	articles, total, err := s.Articles.ListPublished(context.Background(), ArticleFilter{Search: search, Limit: 10})
	require.NoError(t, err)
	var ids []string
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, expected, ids, "search %q", search)
	assert.Equal(t, int64(len(expected)), total, "search %q", search)
}
