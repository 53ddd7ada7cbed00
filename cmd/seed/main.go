package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"newsportal/internal/auth"
	"newsportal/internal/config"
	"newsportal/internal/logger"
	"newsportal/internal/repository"
	"newsportal/internal/service"
)

func main() {
	adminEmail := flag.String("admin-email", "admin@newsportal.local", "admin account email")
	adminPassword := flag.String("admin-password", "admin123", "admin account password, used only when the account is created")
	adminName := flag.String("admin-name", "Admin", "admin display name")
	file := flag.String("file", "", "JSON file with sample articles")
	url := flag.String("url", "", "URL serving JSON sample articles")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	log.Info("Starting seed script...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer stores.Close()
	log.WithField("driver", cfg.StoreDriver).Info("Connected to store")

	samples, err := loadSamples(*file, *url)
	if err != nil {
		log.Fatalf("Failed to load samples: %v", err)
	}
	log.Infof("Loaded %d sample articles", len(samples))

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(stores.Users, jwtService, auth.NewTokenStore(nil))
	articleService := service.NewArticleService(stores.Articles, stores.Users, nil)

	admin, created, err := ensureAdmin(ctx, stores.Users, authService, *adminName, *adminEmail, *adminPassword)
	if err != nil {
		log.Fatalf("Failed to prepare admin: %v", err)
	}
	if created {
		log.Infof("Created admin account %s", *adminEmail)
	} else {
		log.Infof("Reusing admin account %s", *adminEmail)
	}

	seeded, skipped, err := seedArticles(ctx, log, articleService, admin, samples)
	if err != nil {
		log.Fatalf("Failed to seed articles: %v", err)
	}

	log.Info("Seed completed successfully!")
	log.Infof("  - Articles created: %d", seeded)
	log.Infof("  - Invalid samples skipped: %d", skipped)
}
