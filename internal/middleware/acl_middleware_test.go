package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/pkg/utils/jwt"
)

type fakeUsers map[uint]bool

func (f fakeUsers) UserExists(_ context.Context, id uint) (bool, error) {
	return f[id], nil
}

func newApp(t *testing.T) (*fiber.App, *session.Manager) {
	return newAppWithUsers(t, fakeUsers{1: true})
}

func newAppWithUsers(t *testing.T, users UserChecker) (*fiber.App, *session.Manager) {
	t.Helper()
	signer, err := jwt.NewSigner("test-secret")
	require.NoError(t, err)
	sessions := session.NewManager(signer, session.Options{})

	app := fiber.New()
	app.Use(sessions.Middleware())
	app.Post("/as/:role", func(c *fiber.Ctx) error {
		var s session.Session
		switch c.Params("role") {
		case "user":
			s = session.ForUser(1, "Anna", "anna@example.com")
		case "admin":
			s = session.ForAdmin(1)
		}
		return sessions.Establish(c, s, false)
	})
	app.Get("/user-only", RequireUser(users, sessions), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin-only", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app, sessions
}

func cookieFor(t *testing.T, app *fiber.App, role string) string {
	t.Helper()
	if role == "" {
		return ""
	}
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/as/"+role, nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0].Name + "=" + cookies[0].Value
}

func TestRoleGates(t *testing.T) {
	app, _ := newApp(t)

	tests := []struct {
		role       string
		path       string
		wantStatus int
	}{
		{"", "/user-only", fiber.StatusFound},
		{"admin", "/user-only", fiber.StatusFound},
		{"user", "/user-only", fiber.StatusOK},
		{"", "/admin-only", fiber.StatusForbidden},
		{"user", "/admin-only", fiber.StatusForbidden},
		{"admin", "/admin-only", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.role+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tt.path, nil)
			if cookie := cookieFor(t, app, tt.role); cookie != "" {
				req.Header.Set("Cookie", cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusFound {
				assert.Equal(t, "/login", resp.Header.Get("Location"))
			}
		})
	}
}

func TestRequireUserDeletedAccount(t *testing.T) {
	app, _ := newAppWithUsers(t, fakeUsers{})

	req := httptest.NewRequest(fiber.MethodGet, "/user-only", nil)
	req.Header.Set("Cookie", cookieFor(t, app, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	assert.Empty(t, cookies[0].Value)
}
