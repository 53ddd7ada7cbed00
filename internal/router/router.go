package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"newsportal/internal/auth"
	"newsportal/internal/config"
	apperrors "newsportal/internal/errors"
	"newsportal/internal/handler"
	"newsportal/internal/logger"
	"newsportal/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	newsHandler *handler.NewsHandler,
	userHandler *handler.UserHandler,
) {
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	if m != nil {
		e.Use(m.Middleware())
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.MessageResponse{Success: true, Message: "News Portal API is running"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")
	secured := guard.Middleware()

	// Auth routes
	limited := authRateLimiter(cfg)
	api.POST("/auth/register", authHandler.Register, limited)
	api.POST("/auth/login", authHandler.Login, limited)
	api.GET("/auth/me", authHandler.Me, secured)
	api.POST("/auth/logout", authHandler.Logout, secured)

	// News routes
	api.GET("/news", newsHandler.List)
	api.GET("/news/top", newsHandler.Top)
	api.GET("/news/:id", newsHandler.Get)
	api.POST("/news", newsHandler.Create, secured)
	api.PUT("/news/:id", newsHandler.Update, secured)
	api.DELETE("/news/:id", newsHandler.Delete, secured)

	// User routes
	api.PUT("/users/profile", userHandler.UpdateProfile, secured)
	api.PUT("/users/change-password", userHandler.ChangePassword, secured)
	api.GET("/users/:id", userHandler.GetUser)
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.AuthRateLimit),
			Burst:     cfg.AuthRateBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Message: "Too many requests, please try again later.",
				Code:    "RATE_LIMITED",
			})
		},
	})
}
