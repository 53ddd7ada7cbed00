package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("politics").Valid())
	assert.False(t, Category("").Valid())
	assert.Len(t, Categories, 10)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}

func TestProjection(t *testing.T) {
	u := &User{ID: "u-1", Name: "Ann", Avatar: "a.png", Email: "ann@example.com", Bio: "writer", PasswordHash: "hash"}

	assert.Equal(t, &Author{ID: "u-1", Name: "Ann", Avatar: "a.png"}, u.Projection(0))
	assert.Equal(t, "ann@example.com", u.Projection(AuthorEmail).Email)
	assert.Empty(t, u.Projection(AuthorEmail).Bio)

	detail := u.Projection(AuthorEmail | AuthorBio)
	assert.Equal(t, "ann@example.com", detail.Email)
	assert.Equal(t, "writer", detail.Bio)
}

func TestNewArticleView(t *testing.T) {
	view := NewArticleView(Article{ID: "a-1", AuthorID: "gone"}, nil, AuthorEmail)

	assert.Equal(t, []string{}, view.Tags)
	assert.Equal(t, &Author{ID: "gone"}, view.Author)
}
