package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/ai"
	"github.com/wakanda-gov/platform/internal/api/http/handlers"
	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/domain"
	"github.com/wakanda-gov/platform/internal/events"
	"github.com/wakanda-gov/platform/internal/modules"
	"github.com/wakanda-gov/platform/internal/observability"
	"github.com/wakanda-gov/platform/internal/repository"
	"github.com/wakanda-gov/platform/internal/service"
)

type testEnv struct {
	app  *fiber.App
	auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	repo := repository.NewMemoryUserRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)
	authCfg := config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenTTLHours:  168,
		RefreshTokenTTLHours: 720,
		BcryptCost:           4,
	}
	authService := service.NewAuthService(authCfg, repo, dispatcher, logger)
	userService := service.NewUserService(repo)
	metrics := observability.NewMetrics()
	store := modules.NewStore()

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		App:       config.AppConfig{RequestTimeoutSeconds: 5},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Logger:    logger,
		Metrics:   metrics,
	})
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("test", "test", nil, nil),
		Meta:    handlers.NewMetaHandler("test", "test", "test", metrics),
		Users:   handlers.NewUsersHandler(authService, userService),
		Jobs:    handlers.NewJobsHandler(store),
		Finance: handlers.NewFinanceHandler(store),
		Energy:  handlers.NewEnergyHandler(store),
		Carbon:  handlers.NewCarbonHandler(store),
		Policy:  handlers.NewPolicyHandler(store),
		AI:      handlers.NewAIHandler(ai.NewClient(config.AIConfig{DefaultModel: "test-model"})),
		Auth:    auth.NewMiddleware(authService.TokenManager(), logger),
	})
	return &testEnv{app: app, auth: authService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, 5000)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerBody(email, username string) map[string]any {
	return map[string]any{
		"email":     email,
		"username":  username,
		"firstName": "Alice",
		"lastName":  "Okafor",
		"password":  "Abcdef1!",
	}
}

func TestRegisterThenDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	require.NotEmpty(t, tokens["accessToken"])
	require.NotEmpty(t, tokens["refreshToken"])
	user := data["user"].(map[string]any)
	require.Equal(t, "a@x.com", user["email"])
	_, leaked := user["password"]
	require.False(t, leaked)

	resp, body = env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice2"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "User with this email already exists", body["error"])
	require.Equal(t, false, body["success"])
	require.Equal(t, "/api/v1/users/register", body["path"])
	require.Equal(t, "POST", body["method"])
	require.NotEmpty(t, body["timestamp"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	bad := registerBody("not-an-email", "x")
	bad["password"] = "weak"
	resp, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	details := body["details"].(map[string]any)
	require.Contains(t, details, "Email")
	require.Contains(t, details, "Username")
	require.Contains(t, details, "Password")
}

func TestLoginWrongPasswordMessage(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))

	resp, body := env.do(t, http.MethodPost, "/api/v1/users/login", "",
		map[string]any{"email": "a@x.com", "password": "Wrong1!aa"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid email or password", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/v1/users/login", "",
		map[string]any{"email": "nobody@x.com", "password": "Wrong1!aa"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestAdminRouteWithUserToken(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := body["data"].(map[string]any)["tokens"].(map[string]any)["accessToken"].(string)

	resp, body = env.do(t, http.MethodGet, "/api/v1/admin/metrics", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Insufficient permissions", body["error"])
}

func TestExpiredTokenOnMandatoryRoute(t *testing.T) {
	env := newTestEnv(t)
	expired, _, err := env.auth.TokenManager().Issue("user-1", "a@x.com", domain.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	resp, body := env.do(t, http.MethodGet, "/api/v1/users/me", expired, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid or expired token", body["error"])
}

func TestMissingHeaderOnMandatoryRoute(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Missing authorization header", body["error"])
}

func TestMeAndSelfLookup(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))
	data := body["data"].(map[string]any)
	token := data["tokens"].(map[string]any)["accessToken"].(string)
	userID := data["user"].(map[string]any)["id"].(string)

	resp, body := env.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice", body["data"].(map[string]any)["username"])

	// Reading the own record by id is allowed for plain users.
	resp, _ = env.do(t, http.MethodGet, "/api/v1/users/"+userID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Reading someone else's requires manager seniority.
	_, other := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("b@x.com", "bob"))
	otherID := other["data"].(map[string]any)["user"].(map[string]any)["id"].(string)
	resp, body = env.do(t, http.MethodGet, "/api/v1/users/"+otherID, token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Insufficient permissions", body["error"])
}

func TestOptionalAuthOnJobs(t *testing.T) {
	env := newTestEnv(t)
	reg := registerBody("m@x.com", "moyo")
	reg["role"] = "manager"
	_, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", reg)
	managerToken := body["data"].(map[string]any)["tokens"].(map[string]any)["accessToken"].(string)

	resp, _ := env.do(t, http.MethodPost, "/api/v1/jobs/", managerToken,
		map[string]any{"title": "Engineer", "active": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/api/v1/jobs/", managerToken,
		map[string]any{"title": "Archived", "active": false})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Anonymous callers see only active postings; a bad token degrades to
	// anonymous instead of failing.
	for _, token := range []string{"", "bogus-token"} {
		resp, body = env.do(t, http.MethodGet, "/api/v1/jobs/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, body["data"].([]any), 1)
	}

	resp, body = env.do(t, http.MethodGet, "/api/v1/jobs/", managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 2)
}

func TestUserListRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))
	userToken := body["data"].(map[string]any)["tokens"].(map[string]any)["accessToken"].(string)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/users/", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	reg := registerBody("m@x.com", "moyo")
	reg["role"] = "manager"
	_, body = env.do(t, http.MethodPost, "/api/v1/users/register", "", reg)
	managerToken := body["data"].(map[string]any)["tokens"].(map[string]any)["accessToken"].(string)

	resp, body = env.do(t, http.MethodGet, "/api/v1/users/?role=user", managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, float64(1), data["total"])
}

func TestAIChatStubbed(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody("a@x.com", "alice"))
	token := body["data"].(map[string]any)["tokens"].(map[string]any)["accessToken"].(string)

	resp, body := env.do(t, http.MethodPost, "/api/v1/ai/chat", token,
		map[string]any{"message": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, true, data["stubbed"])
	require.Equal(t, "test-model", data["model"])
}
