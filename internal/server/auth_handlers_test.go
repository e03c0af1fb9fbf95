package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthTestApp(mockRepo *MockUserRepository) *fiber.App {
	tokens := auth.NewTokenService("test-secret-key-12345678901234567890123456789012", time.Hour)
	s := &Server{authService: service.NewAuthService(mockRepo, tokens)}

	app := fiber.New()
	app.Post("/register", s.Register)
	app.Post("/login", s.Login)
	return app
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "John Doe",
				"email":    "john@example.com",
				"password": "secret1",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "john@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"name":     "John Doe",
				"email":    "john@example.com",
				"password": "secret1",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "john@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"email": "john@example.com",
			},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			app := newAuthTestApp(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var user models.User
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
				assert.Empty(t, user.Password)
				assert.Contains(t, user.Avatar, "gravatar.com")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &models.User{ID: 3, Name: "Jane", Email: "jane@example.com", Password: hash}

	t.Run("Success returns token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		app := newAuthTestApp(mockRepo)

		body, _ := json.Marshal(map[string]string{"email": "jane@example.com", "password": "secret1"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.NotEmpty(t, payload.Token)
	})

	t.Run("Wrong password is unauthenticated", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		app := newAuthTestApp(mockRepo)

		body, _ := json.Marshal(map[string]string{"email": "jane@example.com", "password": "wrong1"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
