package handler

import (
	"newsportal/internal/model"
	"newsportal/internal/service"
)

// MessageResponse is the envelope of operations without a payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user"`
}

// NewsListResponse is one page of the listing.
type NewsListResponse struct {
	Success bool `json:"success"`
	service.ArticlePage
}

// NewsFeedResponse wraps several articles.
type NewsFeedResponse struct {
	Success bool                `json:"success"`
	News    []model.ArticleView `json:"news"`
}

// NewsResponse wraps a single article.
type NewsResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	News    *model.ArticleView `json:"news"`
}
