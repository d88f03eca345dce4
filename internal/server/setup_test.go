package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theandrewmo/warbler/internal/auth"
	"github.com/theandrewmo/warbler/internal/config"
	"github.com/theandrewmo/warbler/internal/models"
	"github.com/theandrewmo/warbler/internal/repository"
	"github.com/theandrewmo/warbler/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server over in-memory SQLite and miniredis with the
// full route table. Rate limiting is disabled via APP_ENV=test.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	s := &Server{
		config: &config.Config{
			SessionSecret:   "test-secret",
			SessionTTLHours: 24,
			Env:             "test",
		},
		db:          db,
		redis:       rdb,
		sessions:    auth.NewSessionStore(rdb, time.Hour),
		userRepo:    userRepo,
		followRepo:  followRepo,
		messageRepo: messageRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.messageService = service.NewMessageService(messageRepo, userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// doJSON issues a JSON request against the test app. A non-empty sessionID
// is sent as the session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, sessionID string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

// signupUser registers a user through the API and returns the session ID
// from the response cookie.
func signupUser(t *testing.T, app *fiber.App, username string) (userID uint, sessionID string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d", username, resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookie {
			sessionID = c.Value
		}
	}
	if sessionID == "" {
		t.Fatalf("signup %s: no session cookie in response", username)
	}

	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("signup %s: missing user in response", username)
	}
	return uint(user["id"].(float64)), sessionID
}
