package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"newsportal/internal/auth"
	"newsportal/internal/cache"
	apperrors "newsportal/internal/errors"
	"newsportal/internal/model"
	"newsportal/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileInput carries the profile fields present in a request. A nil field
// was absent and leaves the stored value alone.
type ProfileInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// UserService covers a user's own account and public profiles.
type UserService interface {
	UpdateProfile(ctx context.Context, identity auth.Identity, in ProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, identity auth.Identity, currentPassword, newPassword string) error
	GetPublicProfile(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) findUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found.")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies name, bio and avatar to the caller's record. An empty
// name keeps the current one; bio and avatar may be cleared.
func (s *userService) UpdateProfile(ctx context.Context, identity auth.Identity, in ProfileInput) (*model.User, error) {
	user, err := s.findUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			user.Name = name
		}
	}
	if in.Bio != nil {
		if utf8.RuneCountInString(*in.Bio) > model.MaxBioLength {
			return nil, apperrors.InvalidInput("Bio cannot exceed 200 characters")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found.")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// ChangePassword replaces the password hash once the current password matches.
func (s *userService) ChangePassword(ctx context.Context, identity auth.Identity, currentPassword, newPassword string) error {
	user, err := s.findUser(ctx, identity.UserID)
	if err != nil {
		return err
	}

	if !checkPassword(user.PasswordHash, currentPassword) {
		return apperrors.InvalidCredential("Current password is incorrect.")
	}
	if len(newPassword) < MinPasswordLength {
		return apperrors.InvalidInput("New password must be at least 6 characters.")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// GetPublicProfile returns a user by id, read through the cache.
func (s *userService) GetPublicProfile(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}
