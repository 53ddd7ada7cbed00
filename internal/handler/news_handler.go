package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"newsportal/internal/auth"
	"newsportal/internal/service"
)

// NewsHandler serves article endpoints.
type NewsHandler struct {
	svc service.ArticleService
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(svc service.ArticleService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// ArticleRequest is the article payload for create and update. On update
// every field is replaced; omitted fields are cleared.
type ArticleRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

func (r ArticleRequest) input() service.ArticleInput {
	return service.ArticleInput{
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		Image:       r.Image,
		Tags:        r.Tags,
		IsPublished: r.IsPublished,
	}
}

// queryInt parses a query parameter, returning 0 when absent or malformed.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// List godoc
// @Summary List published news
// @Tags news
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, default 10"
// @Param category query string false "Category"
// @Param author query string false "Author ID"
// @Param search query string false "Case-insensitive text in title, content or tags"
// @Success 200 {object} NewsListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), service.ListQuery{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.QueryParam("category"),
		AuthorID: c.QueryParam("author"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, NewsListResponse{Success: true, ArticlePage: *page})
}

// Top godoc
// @Summary Most recent published news
// @Tags news
// @Produce json
// @Success 200 {object} NewsFeedResponse
// @Router /news/top [get]
func (h *NewsHandler) Top(c echo.Context) error {
	news, err := h.svc.Top(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, NewsFeedResponse{Success: true, News: news})
}

// Get godoc
// @Summary Read one article and count the view
// @Tags news
// @Produce json
// @Param id path string true "News ID"
// @Success 200 {object} NewsResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	news, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, NewsResponse{Success: true, News: news})
}

// Create godoc
// @Summary Publish an article
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ArticleRequest true "Article"
// @Success 201 {object} NewsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return fail(errNoIdentity)
	}

	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}

	news, err := h.svc.Create(c.Request().Context(), identity, req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, NewsResponse{Success: true, Message: "News created successfully", News: news})
}

// Update godoc
// @Summary Replace an article
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Param request body ArticleRequest true "Article"
// @Success 200 {object} NewsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return fail(errNoIdentity)
	}

	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}

	news, err := h.svc.Update(c.Request().Context(), identity, c.Param("id"), req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, NewsResponse{Success: true, Message: "News updated successfully", News: news})
}

// Delete godoc
// @Summary Delete an article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return fail(errNoIdentity)
	}

	if err := h.svc.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "News deleted successfully"})
}
