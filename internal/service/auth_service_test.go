package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/auth"
	apperrors "newsportal/internal/errors"
	"newsportal/internal/model"
	"newsportal/internal/repository"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: "Test User",
			email:    "  Test@Example.com ",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = "u-1"
					}).
					Return(nil)
			},
		},
		{
			name:     "user already exists",
			userName: "Existing User",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:     "unique index wins a race",
			userName: "Racer",
			email:    "racer@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racer@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "short password",
			userName:      "Short",
			email:         "short@example.com",
			password:      "12345",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "blank name",
			userName:      "   ",
			email:         "blank@example.com",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			token, user, err := service.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.True(t, checkPassword(user.PasswordHash, tt.password))

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "u-1", claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	stored := &model.User{ID: "u-1", Email: "test@example.com", PasswordHash: hashed(t, "password123")}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "TEST@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrUnauthenticated,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope-nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))
			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "u-1", user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginStoreFailureIsNotAuthError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, errors.New("connection refused"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))
	_, _, err := service.Login(context.Background(), "a@example.com", "password123")

	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestAuthService_Me(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", Name: "Ann"}, nil)
	mockRepo.On("FindByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))

	user, err := service.Me(context.Background(), auth.Identity{UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = service.Me(context.Background(), auth.Identity{UserID: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("u-1")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	require.NoError(t, service.Logout(context.Background(), claims))
	assert.ErrorIs(t, service.Logout(context.Background(), nil), apperrors.ErrUnauthenticated)
	mockTokenStore.AssertExpectations(t)
}
