package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/t", handler, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"user_id": ctx.Locals("user_id"),
			"email":   ctx.Locals("email"),
		})
	})
	return app
}

func TestJwtMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(JwtMiddleware)

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "abc",
		"email":   "voter@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(JwtMiddleware)

	req := httptest.NewRequest("GET", "/t", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	wrong := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	expired := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalJwtMiddlewareNeverRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(OptionalJwtMiddleware)

	req := httptest.NewRequest("GET", "/t", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminMiddlewareChecksConfiguredEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	app := fiber.New()
	app.Get("/t", JwtMiddleware, AdminMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	adminToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "abc",
		"email":   "admin@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	voterToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "def",
		"email":   "voter@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/t", nil)
	req.Header.Set("Authorization", "Bearer "+voterToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
