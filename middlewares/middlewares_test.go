package middlewares

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"undangan.link/pkg/ratelimit"
	"undangan.link/pkg/sessiontoken"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCookie = CookieOptions{Name: "auth_token"}

func newAuthApp(t *testing.T) (*fiber.App, sessiontoken.IService) {
	t.Helper()
	tokens, err := sessiontoken.New("", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", AuthMiddleware(tokens, testCookie), func(c *fiber.Ctx) error {
		tenant := CurrentTenant(c)
		return c.JSON(fiber.Map{"user": tenant.UserID, "personalize": tenant.PersonalizeID, "email": tenant.Email})
	})
	return app, tokens
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	app, tokens := newAuthApp(t)
	userID, personalizeID := uuid.New(), uuid.New()
	token, err := tokens.Issue(sessiontoken.Claims{UserID: userID.String(), Email: "a@b.id", PersonalizeID: personalizeID.String()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, userID.String(), body["user"])
	assert.Equal(t, personalizeID.String(), body["personalize"])
	assert.Equal(t, "a@b.id", body["email"])
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	app, tokens := newAuthApp(t)
	token, err := tokens.Issue(sessiontoken.Claims{UserID: uuid.NewString(), PersonalizeID: uuid.NewString()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app, tokens := newAuthApp(t)
	badIDs, err := tokens.Issue(sessiontoken.Claims{UserID: "bukan-uuid", PersonalizeID: "p-1"})
	require.NoError(t, err)

	t.Run("token yok", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Unauthorized", body["message"])
		assert.Empty(t, resp.Header.Get("Set-Cookie"))
	})

	for name, value := range map[string]string{"bozuk token": "v4.local.bozuk", "kimlik alanları bozuk": badIDs} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.AddCookie(&http.Cookie{Name: "auth_token", Value: value})
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Set-Cookie"), "auth_token=;"), "çerez temizlenmeli")
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(0.001, 2)
	t.Cleanup(limiter.Stop)

	app := fiber.New()
	app.Post("/api/rsvp", RateLimitMiddleware(limiter), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/rsvp", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/rsvp", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}
