package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskBoard/internal/app"
	"taskBoard/internal/auth"
	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			RateLimit:      10000,
			CorsOrigins:    []string{"http://localhost:3000"},
		},
		Repository: config.RepositoryConfig{Type: config.RepositoryMemory},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T) *client {
	return newClientWithStore(t, inmemory.NewStore())
}

func newClientWithStore(t *testing.T, store *inmemory.Store) *client {
	cfg := testConfig()
	services := app.NewServices(store, cfg.Auth)
	router := app.NewRouter(cfg.Server, services, handlers.NewHealthHandler(store, cfg.Repository.Type))
	return &client{t: t, router: router}
}

func (c *client) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (c *client) login(email, password string) string {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (c *client) register(name, email string) (string, string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(c.t, http.StatusCreated, code, body)
	u := body["user"].(map[string]any)
	return body["token"].(string), u["id"].(string)
}

// TestRouter_Workflow проходит основной сценарий через настоящий роутер
func TestRouter_Workflow(t *testing.T) {
	c := newClient(t)

	aliceToken, _ := c.register("Alice", "alice@example.com")
	bobToken, bobID := c.register("Bob", "bob@example.com")
	eveToken, _ := c.register("Eve", "eve@example.com")

	code, body := c.do(http.MethodPost, "/api/projects", aliceToken, map[string]any{"name": "Website"})
	require.Equal(t, http.StatusCreated, code)
	projectID := body["project"].(map[string]any)["id"].(string)

	code, _ = c.do(http.MethodPost, "/api/projects/"+projectID+"/members", aliceToken, map[string]any{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodPost, "/api/tasks", bobToken, map[string]any{
		"project": projectID, "title": "Landing", "assigned_to": bobID, "status": "completed",
	})
	require.Equal(t, http.StatusCreated, code, body)
	created := body["task"].(map[string]any)
	taskID := created["id"].(string)
	assert.Equal(t, "done", created["status"])
	assert.Equal(t, float64(0), created["position"])

	// посторонний видит 403, несуществующая задача 404
	code, body = c.do(http.MethodGet, "/api/tasks/"+taskID, eveToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", body["error"])
	code, _ = c.do(http.MethodGet, "/api/tasks/00000000-0000-0000-0000-000000000001", eveToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = c.do(http.MethodPatch, "/api/tasks/"+taskID+"/position", aliceToken, map[string]any{"position": 5, "status": "review"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), body["task"].(map[string]any)["position"])

	code, body = c.do(http.MethodPost, "/api/comments", bobToken, map[string]any{"task": taskID, "content": "  on it  "})
	require.Equal(t, http.StatusCreated, code)
	commentID := body["comment"].(map[string]any)["id"].(string)
	assert.Equal(t, "on it", body["comment"].(map[string]any)["content"])

	// админ проекта может удалить, но не редактировать чужой комментарий
	code, _ = c.do(http.MethodPut, "/api/comments/"+commentID, aliceToken, map[string]any{"content": "edited"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = c.do(http.MethodGet, "/api/tasks/"+taskID, aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["task"].(map[string]any)["comments"], 1)

	code, _ = c.do(http.MethodDelete, "/api/comments/"+commentID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodGet, "/api/comments/task/"+taskID, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["comments"])

	code, body = c.do(http.MethodGet, "/api/tasks/project/"+projectID+"?status=review", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tasks"], 1)

	code, body = c.do(http.MethodDelete, "/api/projects/"+projectID+"/members/"+bobID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code, body)
}

// TestRouter_UpdatePosition_CheckOrder проверяет, что пустое тело не маскирует 404 и 403
func TestRouter_UpdatePosition_CheckOrder(t *testing.T) {
	c := newClient(t)
	aliceToken, _ := c.register("Alice", "alice@example.com")
	eveToken, _ := c.register("Eve", "eve@example.com")

	code, body := c.do(http.MethodPost, "/api/projects", aliceToken, map[string]any{"name": "Website"})
	require.Equal(t, http.StatusCreated, code)
	projectID := body["project"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/tasks", aliceToken, map[string]any{"project": projectID, "title": "Landing"})
	require.Equal(t, http.StatusCreated, code)
	taskID := body["task"].(map[string]any)["id"].(string)

	tests := []struct {
		name           string
		token          string
		target         string
		expectedStatus int
		expectedError  string
	}{
		{"несуществующая задача", eveToken, "/api/tasks/00000000-0000-0000-0000-000000000001/position", http.StatusNotFound, "NOT_FOUND"},
		{"посторонний", eveToken, "/api/tasks/" + taskID + "/position", http.StatusForbidden, "FORBIDDEN"},
		{"владелец без позиции", aliceToken, "/api/tasks/" + taskID + "/position", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := c.do(http.MethodPatch, tt.target, tt.token, map[string]any{})
			assert.Equal(t, tt.expectedStatus, code)
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}

// TestRouter_AuthErrors проверяет 401 и формат ошибки
func TestRouter_AuthErrors(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHENTICATED", body["error"])

	code, _ = c.do(http.MethodGet, "/api/projects", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotEmpty(t, body["request_id"])

	token, _ := c.register("Alice", "alice@example.com")

	code, _ = c.do(http.MethodGet, "/api/projects/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

// TestRouter_AdminSetActive проверяет порядок: пользователь не найден раньше, чем нет прав
func TestRouter_AdminSetActive(t *testing.T) {
	store := inmemory.NewStore()
	seed, err := inmemory.ParseSeed([]byte(`
users:
  - name: Root
    email: root@example.com
    password: secret1
    role: admin
`))
	require.NoError(t, err)
	require.NoError(t, store.Apply(context.Background(), seed, auth.NewBcryptHasher(bcrypt.MinCost)))

	c := newClientWithStore(t, store)
	rootToken := c.login("root@example.com", "secret1")
	bobToken, bobID := c.register("Bob", "bob@example.com")
	missing := "/api/admin/users/00000000-0000-0000-0000-000000000001/deactivate"

	tests := []struct {
		name           string
		token          string
		target         string
		expectedStatus int
		expectedError  string
	}{
		{"не админ, пользователя нет", bobToken, missing, http.StatusNotFound, "NOT_FOUND"},
		{"не админ, пользователь есть", bobToken, "/api/admin/users/" + bobID + "/deactivate", http.StatusForbidden, "FORBIDDEN"},
		{"админ, пользователя нет", rootToken, missing, http.StatusNotFound, "NOT_FOUND"},
		{"админ отключает bob", rootToken, "/api/admin/users/" + bobID + "/deactivate", http.StatusOK, ""},
		{"отключённый bob не проходит аутентификацию", bobToken, "/api/auth/profile", http.StatusUnauthorized, "ACCOUNT_DEACTIVATED"},
		{"админ включает bob обратно", rootToken, "/api/admin/users/" + bobID + "/activate", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if tt.target == "/api/auth/profile" {
				method = http.MethodGet
			}
			code, body := c.do(method, tt.target, tt.token, nil)
			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

// TestRouter_ContentType проверяет 415 для записи без JSON
func TestRouter_ContentType(t *testing.T) {
	c := newClient(t)
	token, _ := c.register("Alice", "alice@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBufferString(`{"name":"x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// TestRouter_Health проверяет /health и заголовок X-Request-ID
func TestRouter_Health(t *testing.T) {
	c := newClient(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

// TestOpenStore_MemoryWithSeed проверяет выбор бэкенда и загрузку демо-данных
func TestOpenStore_MemoryWithSeed(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(seed, []byte(`
users:
  - name: Alice
    email: alice@example.com
    password: secret1
    role: admin
projects:
  - name: Website
    owner: alice@example.com
`), 0o600))

	cfg := testConfig()
	cfg.Repository.SeedFile = seed

	store, err := app.OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close(context.Background())

	u, err := store.Users().GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	projects, err := store.Projects().ListByUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	cfg.Repository.SeedFile = filepath.Join(t.TempDir(), "missing.yml")
	_, err = app.OpenStore(context.Background(), cfg)
	assert.Error(t, err)

	cfg.Repository.Type = "cassandra"
	_, err = app.OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

// TestApp_InitShutdown проверяет сборку и остановку приложения
func TestApp_InitShutdown(t *testing.T) {
	a := app.New(testConfig())
	require.NoError(t, a.Init(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}
