package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/anonqa-service/internal/api/http"
	"github.com/spec-kit/anonqa-service/internal/api/http/handlers"
	"github.com/spec-kit/anonqa-service/internal/config"
	"github.com/spec-kit/anonqa-service/internal/events"
	"github.com/spec-kit/anonqa-service/internal/observability"
	"github.com/spec-kit/anonqa-service/internal/ratelimit"
	"github.com/spec-kit/anonqa-service/internal/repository/memory"
	"github.com/spec-kit/anonqa-service/internal/service"
)

const (
	testQuestion = "What's your favorite color?"
	testAnswer   = "Blue"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:                  "anonqa-service-test",
			Env:                   "development",
			RequestTimeoutSeconds: 5,
			BodyLimitBytes:        1024,
		},
		CORS: config.CORSConfig{AllowedOrigins: "http://localhost:3000"},
		RateLimit: config.RateLimitConfig{
			GlobalLimit:                100,
			GlobalWindowSeconds:        900,
			UserCreateLimit:            50,
			UserCreateWindowSeconds:    3600,
			MessageCreateLimit:         10,
			MessageCreateWindowSeconds: 60,
		},
	}

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	users := memory.NewUserStore()
	messages := memory.NewMessageStore()
	dispatcher := events.NewInMemoryDispatcher(logger)

	userService := service.NewUserService(users, dispatcher)
	messageService := service.NewMessageService(messages, users, dispatcher)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(),
		Users:    handlers.NewUsersHandler(userService),
		Messages: handlers.NewMessagesHandler(messageService),
		GlobalLimit: ratelimit.Middleware(
			ratelimit.NewMemory(cfg.RateLimit.GlobalLimit, cfg.RateLimit.GlobalWindow()),
			"Too many requests from this IP, please try again later.", logger),
		UserCreateLimit: ratelimit.Middleware(
			ratelimit.NewMemory(cfg.RateLimit.UserCreateLimit, cfg.RateLimit.UserCreateWindow()),
			"Too many user creations from this IP", logger),
		MessageCreateLimit: ratelimit.Middleware(
			ratelimit.NewMemory(cfg.RateLimit.MessageCreateLimit, cfg.RateLimit.MessageCreateWindow()),
			"Too many messages sent, please try again later", logger),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// body-cap rejections arrive as plain text from the transport, so a
	// failed unmarshal just leaves the payload empty
	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp.StatusCode, payload
}

func createUser(t *testing.T, app *fiber.App, userID, name string) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/users/create",
		map[string]string{"userId": userID, "name": name})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["status"])

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestCreateUserEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/users/create",
		map[string]string{"userId": "user_abc123", "name": "Alice"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user_abc123", user["userId"])
	assert.Equal(t, "Alice", user["name"])
}

func TestCreateUserInvalidName(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/users/create",
		map[string]string{"userId": "user_abc123", "name": "<script>"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid name (2-50 characters, alphanumeric only)", body["error"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateUserIdempotentOverHTTP(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "user_abc123", "Alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/users/create",
		map[string]string{"userId": "user_abc123", "name": "Mallory"})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Alice", user["name"], "second create returns the original record")
}

func TestGetUserNotFound(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/users/user_missing1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])
}

func TestMessageLifecycle(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "user_abc123", "Alice")
	createUser(t, app, "user_mallory1", "Mallory")

	status, body := doJSON(t, app, http.MethodPost, "/api/messages/create", map[string]string{
		"messageId": "msg_1",
		"userId":    "user_abc123",
		"question":  testQuestion,
		"answer":    testAnswer,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	msg := body["message"].(map[string]any)
	assert.Equal(t, "msg_1", msg["messageId"])

	status, body = doJSON(t, app, http.MethodGet, "/api/messages/user_abc123", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	listed := body["messages"].([]any)
	require.Len(t, listed, 1)
	entry := listed[0].(map[string]any)
	assert.Equal(t, testAnswer, entry["answer"])
	assert.NotEmpty(t, entry["createdAt"])

	// a stranger's userId must not authorize deletion
	status, body = doJSON(t, app, http.MethodDelete, "/api/messages/msg_1",
		map[string]string{"messageId": "msg_1", "userId": "user_mallory1"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Unauthorized: You can only delete your own messages", body["error"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/messages/msg_1",
		map[string]string{"messageId": "msg_1", "userId": "user_abc123"})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/messages/user_abc123", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])
}

func TestCreateMessageUserMissing(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/messages/create", map[string]string{
		"messageId": "msg_1",
		"userId":    "user_nobody1",
		"question":  testQuestion,
		"answer":    testAnswer,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])
}

func TestCreateMessageConflict(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "user_abc123", "Alice")

	payload := map[string]string{
		"messageId": "msg_1",
		"userId":    "user_abc123",
		"question":  testQuestion,
		"answer":    testAnswer,
	}
	status, _ := doJSON(t, app, http.MethodPost, "/api/messages/create", payload)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/messages/create", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Message already exists", body["error"])
}

func TestMessageCreationRateLimit(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "user_abc123", "Alice")

	for i := 0; i < 10; i++ {
		status, body := doJSON(t, app, http.MethodPost, "/api/messages/create", map[string]string{
			"messageId": fmt.Sprintf("msg_%d", i),
			"userId":    "user_abc123",
			"question":  testQuestion,
			"answer":    testAnswer,
		})
		require.Equal(t, http.StatusOK, status, "request %d body: %v", i+1, body)
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/messages/create", map[string]string{
		"messageId": "msg_overflow",
		"userId":    "user_abc123",
		"question":  testQuestion,
		"answer":    testAnswer,
	})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too many messages sent, please try again later", body["error"])

	// the rejected request produced no record
	status, body = doJSON(t, app, http.MethodGet, "/api/messages/user_abc123", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(10), body["count"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])
}

func TestBodyLimitRejected(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "user_abc123", "Alice")

	// 1KB cap on request bodies; pad the answer far beyond it
	status, _ := doJSON(t, app, http.MethodPost, "/api/messages/create", map[string]string{
		"messageId": "msg_big",
		"userId":    "user_abc123",
		"question":  testQuestion,
		"answer":    strings.Repeat("a", 4096),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}
