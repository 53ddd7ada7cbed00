package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"newsportal/internal/auth"
	apperrors "newsportal/internal/errors"
	"newsportal/internal/model"
	"newsportal/internal/repository"
	"newsportal/internal/service"
)

//go:embed samples.json
var builtinSamples []byte

const fetchTimeout = 15 * time.Second

// SeedArticle is the JSON shape of one sample article.
type SeedArticle struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
}

// loadSamples reads articles from file, url or the built-in set, in that order of preference.
func loadSamples(file, url string) ([]SeedArticle, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case file != "":
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
	case url != "":
		data, err = fetchSamples(url)
		if err != nil {
			return nil, err
		}
	default:
		data = builtinSamples
	}

	var samples []SeedArticle
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return samples, nil
}

// fetchSamples downloads sample data from url.
func fetchSamples(url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("samples URL returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// ensureAdmin returns the identity of the admin account, registering it
// first when the email is unknown and promoting it when it is not an admin.
func ensureAdmin(ctx context.Context, users repository.UserRepository, authService service.AuthService, name, email, password string) (auth.Identity, bool, error) {
	created := false
	user, err := users.FindByEmail(ctx, service.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		_, user, err = authService.Register(ctx, name, email, password)
		created = true
	}
	if err != nil {
		return auth.Identity{}, false, fmt.Errorf("ensure admin %s: %w", email, err)
	}

	if !user.IsAdmin() {
		user.Role = model.RoleAdmin
		if err := users.Update(ctx, user); err != nil {
			return auth.Identity{}, false, fmt.Errorf("promote admin %s: %w", email, err)
		}
	}
	return auth.Identity{UserID: user.ID, Role: user.Role}, created, nil
}

// seedArticles creates every sample through the article service so the same
// validation and excerpt derivation apply. Invalid samples are skipped.
func seedArticles(ctx context.Context, log logrus.FieldLogger, articles service.ArticleService, author auth.Identity, samples []SeedArticle) (created, skipped int, err error) {
	for _, sample := range samples {
		_, err := articles.Create(ctx, author, service.ArticleInput{
			Title:    sample.Title,
			Content:  sample.Content,
			Excerpt:  sample.Excerpt,
			Category: sample.Category,
			Image:    sample.Image,
			Tags:     sample.Tags,
		})
		if errors.Is(err, apperrors.ErrInvalidInput) {
			log.WithError(err).WithField("title", sample.Title).Warn("skipping invalid sample")
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("create %q: %w", sample.Title, err)
		}
		created++
	}
	return created, skipped, nil
}
