package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamhouse_backend/pkg/utils/jwt"
)

func newTestApp(t *testing.T) (*fiber.App, *Manager, *jwt.Signer) {
	t.Helper()

	signer, err := jwt.NewSigner("test-secret")
	require.NoError(t, err)
	m := NewManager(signer, Options{CookieName: "sid"})

	app := fiber.New()
	app.Use(m.Middleware())
	app.Post("/login/user", func(c *fiber.Ctx) error {
		return m.Establish(c, ForUser(5, "Ann", "ann@example.com"), c.Query("remember") == "1")
	})
	app.Post("/login/admin", func(c *fiber.Ctx) error {
		return m.Establish(c, ForAdmin(9), false)
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		m.Clear(c)
		return nil
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(FromCtx(c))
	})
	return app, m, signer
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func whoami(t *testing.T, app *fiber.App, cookie *http.Cookie) Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var s Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	return s
}

func TestEstablishUserSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login/user", nil))
	require.NoError(t, err)
	cookie := sessionCookie(t, resp)

	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.IsZero(), "non-remembered session must be a browser-session cookie")

	s := whoami(t, app, cookie)
	assert.Equal(t, RoleUser, s.Role)
	assert.Equal(t, uint(5), s.ID)
	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, "ann@example.com", s.Email)
}

func TestEstablishRemembered(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login/user?remember=1", nil))
	require.NoError(t, err)
	cookie := sessionCookie(t, resp)

	require.False(t, cookie.Expires.IsZero())
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), cookie.Expires, time.Minute)
}

func TestAdminSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login/admin", nil))
	require.NoError(t, err)

	s := whoami(t, app, sessionCookie(t, resp))
	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsUser())
	assert.Equal(t, uint(9), s.ID)
}

func TestClear(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/logout", nil))
	require.NoError(t, err)

	cookie := sessionCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}

func TestCurrentRejectsBadCookies(t *testing.T) {
	app, _, signer := newTestApp(t)

	assert.True(t, whoami(t, app, nil).IsAnonymous())
	assert.True(t, whoami(t, app, &http.Cookie{Name: "sid", Value: "garbage"}).IsAnonymous())

	ambiguous, err := signer.GenerateToken(jwt.Claims{Role: "superuser", IdentityID: 1}, time.Hour)
	require.NoError(t, err)
	assert.True(t, whoami(t, app, &http.Cookie{Name: "sid", Value: ambiguous}).IsAnonymous())

	noID, err := signer.GenerateToken(jwt.Claims{Role: "user"}, time.Hour)
	require.NoError(t, err)
	assert.True(t, whoami(t, app, &http.Cookie{Name: "sid", Value: noID}).IsAnonymous())

	other, _ := jwt.NewSigner("other-secret")
	forged, err := other.GenerateToken(jwt.Claims{Role: "admin", IdentityID: 1}, time.Hour)
	require.NoError(t, err)
	assert.True(t, whoami(t, app, &http.Cookie{Name: "sid", Value: forged}).IsAnonymous())
}

func TestRolesAreExclusive(t *testing.T) {
	assert.True(t, Anonymous().IsAnonymous())
	assert.False(t, Anonymous().IsUser())
	assert.False(t, Anonymous().IsAdmin())

	u := ForUser(1, "", "")
	assert.True(t, u.IsUser())
	assert.False(t, u.IsAdmin())

	a := ForAdmin(1)
	assert.True(t, a.IsAdmin())
	assert.False(t, a.IsUser())
}
