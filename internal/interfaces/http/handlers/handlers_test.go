package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/handlers"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/internal/usecases"
	"startup-platform.backend/pkg/jwt"
	"startup-platform.backend/pkg/logger"
)

func init() {
	logger.Init("production")
	gin.SetMode(gin.TestMode)
}

// stubUserRepo is an in-memory UserRepository, enough for handler flows.
type stubUserRepo struct {
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    map[uuid.UUID]*entities.User{},
		byEmail: map[string]*entities.User{},
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *entities.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubUserRepo) GetByTelegramUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range r.byID {
		if u.TelegramUsername.Valid && u.TelegramUsername.String == username {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *entities.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	r.byID[user.ID] = user
	return nil
}

func (r *stubUserRepo) ListActiveInvestors(context.Context) ([]*entities.User, error) {
	return nil, nil
}

func (r *stubUserRepo) ListAvailableMentors(context.Context) ([]*entities.User, error) {
	return nil, nil
}

func (r *stubUserRepo) GetManyByIDs(context.Context, []uuid.UUID) ([]*entities.User, error) {
	return nil, nil
}

// stubTelegramEvents collects audit events.
type stubTelegramEvents struct {
	events []*entities.TelegramEvent
}

func (s *stubTelegramEvents) Append(_ context.Context, event *entities.TelegramEvent) error {
	s.events = append(s.events, event)
	return nil
}

type dropSender struct{}

func (dropSender) Send(context.Context, string, string) error { return nil }

func authStack(t *testing.T) (*gin.Engine, *stubUserRepo, *jwt.JWTService) {
	t.Helper()
	userRepo := newStubUserRepo()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	telegram := usecases.NewTelegramUsecase(userRepo, &stubTelegramEvents{}, dropSender{})
	userUsecase := usecases.NewUserUsecase(userRepo, telegram, "@platform_bot")

	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)

	r := gin.New()
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", middleware.AuthMiddleware(jwtService), authHandler.Me)
	r.POST("/api/user/telegram/link", middleware.AuthMiddleware(jwtService), userHandler.LinkTelegram)
	r.POST("/api/user/telegram/confirm", userHandler.ConfirmTelegram)
	return r, userRepo, jwtService
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	r, _, _ := authStack(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "founder@example.com",
		"password": "password123",
		"name":     "Founder",
		"role":     "startup_owner",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.AccessToken)
	assert.True(t, registered.RequiresTelegramLink)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "founder@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))

	w = doJSON(r, http.MethodGet, "/api/auth/me", loggedIn.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "founder@example.com")
}

func TestAuthHandler_Validation(t *testing.T) {
	r, _, _ := authStack(t)

	t.Run("register rejects malformed body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("register rejects short passwords", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"email":    "x@example.com",
			"password": "short",
			"name":     "X",
			"role":     "investor",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"email":    "y@example.com",
			"password": "password123",
			"name":     "Y",
			"role":     "investor",
		})
		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "y@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})
}

func TestTelegramLinkFlow(t *testing.T) {
	r, _, _ := authStack(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "founder@example.com",
		"password": "password123",
		"name":     "Founder",
		"role":     "startup_owner",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var registered entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	token := registered.AccessToken

	t.Run("link requires auth", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/user/telegram/link", "", gin.H{"telegramUsername": "@founder"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed handle", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/user/telegram/link", token, gin.H{"telegramUsername": "founder"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("link then confirm exactly once", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/user/telegram/link", token, gin.H{"telegramUsername": "@founder"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "@platform_bot")

		confirm := gin.H{"telegramId": "100500", "telegramUsername": "@founder"}
		w = doJSON(r, http.MethodPost, "/api/user/telegram/confirm", "", confirm)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(r, http.MethodPost, "/api/user/telegram/confirm", "", confirm)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWebhookHandler(t *testing.T) {
	events := &stubTelegramEvents{}
	userRepo := newStubUserRepo()
	telegram := usecases.NewTelegramUsecase(userRepo, events, dropSender{})
	handler := handlers.NewWebhookHandler(telegram)

	r := gin.New()
	r.POST("/api/webhook/telegram", handler.Telegram)

	t.Run("stores the raw update", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/webhook/telegram", "", gin.H{"update_id": 7})
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, events.events, 1)
		assert.Equal(t, entities.TelegramEventWebhookReceived, events.events[0].EventType)
	})

	t.Run("rejects non-json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/telegram", bytes.NewBufferString("not json"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	handler := handlers.NewHealthHandler("1.0.0")
	r := gin.New()
	r.GET("/api/health", handler.Health)

	w := doJSON(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "1.0.0")
}
