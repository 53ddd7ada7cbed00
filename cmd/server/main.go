package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "newsportal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"newsportal/internal/auth"
	"newsportal/internal/cache"
	"newsportal/internal/config"
	"newsportal/internal/handler"
	"newsportal/internal/logger"
	"newsportal/internal/metrics"
	"newsportal/internal/repository"
	"newsportal/internal/router"
	"newsportal/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title News Portal API
// @version 1.0
// @description News publishing API: articles with categories, search and view counts, JWT authentication and user profiles.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.WithError(err).Warn("close store")
		}
	}()
	log.WithField("driver", cfg.StoreDriver).Info("connected to store")

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all collections")
		if err := stores.Reset(ctx); err != nil {
			log.Fatalf("reset store: %v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without cache and token revocation")
	}

	m := metrics.New("newsportal", prometheus.DefaultRegisterer)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)
	guard := auth.NewGuard(jwtService, stores.Users, tokenStore)

	// Initialize services
	authService := service.NewAuthService(stores.Users, jwtService, tokenStore)
	articleService := service.NewArticleService(stores.Articles, stores.Users, m)
	userService := service.NewUserService(stores.Users, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		log,
		m,
		guard,
		handler.NewAuthHandler(authService),
		handler.NewNewsHandler(articleService),
		handler.NewUserHandler(userService),
	)

	log.Infof("Swagger documentation available at: %s", swaggerURL(cfg))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Infof("server listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}

// swaggerURL builds the UI address from SWAGGER_HOST, which may already carry a scheme.
func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}
