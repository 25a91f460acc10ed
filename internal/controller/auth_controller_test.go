package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamhouse_backend/internal/model"
)

func TestRegisterLoginBrowseScenario(t *testing.T) {
	env := setupTestApp(t)
	estate := env.seedEstate(t, model.EstateTypeHouse, model.BedroomsThree, 150000)
	c := env.client(t)

	resp := c.postForm("/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"password1"}, "confirm_password": {"password1"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, []string{"a@x.com"}, env.mailer.welcome)

	resp = c.get("/logout")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Empty(t, c.cookies)

	resp = c.postForm("/login", loginForm("a@x.com", "password1"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "user", body["session"].(map[string]interface{})["role"])
	assert.Equal(t, "/", body["redirect"])

	path := fmt.Sprintf("/estateitem/%d", estate.ID)
	resp = c.get(path)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["is_favorite"])
	assert.Equal(t, int64(1), env.count(t, &model.ViewHistory{}, "estate_id = ?", estate.ID))

	fav := fmt.Sprintf("/add_to_favorites/%d", estate.ID)
	resp = c.do(http.MethodPost, fav, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["added"])

	resp = c.do(http.MethodPost, fav, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["added"])
	assert.Equal(t, int64(1), env.count(t, &model.Favorite{}, "estate_id = ?", estate.ID))

	resp = c.get(path)
	assert.Equal(t, true, decode(t, resp)["is_favorite"])
	assert.Equal(t, int64(2), env.count(t, &model.ViewHistory{}, "estate_id = ?", estate.ID))

	resp = c.get("/logout")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = c.get("/user/profile")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	env := setupTestApp(t)
	env.seedUser(t, "anna@example.com", "secret123")

	wrong := env.client(t).postForm("/login", loginForm("anna@example.com", "secret124"))
	unknown := env.client(t).postForm("/login", loginForm("ghost@example.com", "secret123"))

	assert.Equal(t, fiber.StatusUnauthorized, wrong.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decode(t, wrong), decode(t, unknown))
	assert.Empty(t, wrong.Cookies())
}

func TestLoginAsAdministrator(t *testing.T) {
	env := setupTestApp(t)
	env.seedAdmin(t, "olga@dreamhouse.by", "adminpass1")
	c := env.client(t)

	resp := c.sendJSON(http.MethodPost, "/login", map[string]interface{}{
		"email": "olga@dreamhouse.by", "password": "adminpass1", "remember_me": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "admin", body["session"].(map[string]interface{})["role"])
	assert.Equal(t, "/admin", body["redirect"])

	resp = c.get("/admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRememberMeSetsPersistentCookie(t *testing.T) {
	env := setupTestApp(t)
	env.seedUser(t, "anna@example.com", "secret123")

	form := loginForm("anna@example.com", "secret123")
	resp := env.client(t).postForm("/login", form)
	require.Len(t, resp.Cookies(), 1)
	assert.True(t, resp.Cookies()[0].Expires.IsZero(), "browser-session cookie")

	form.Set("remember_me", "on")
	resp = env.client(t).postForm("/login", form)
	require.Len(t, resp.Cookies(), 1)
	assert.False(t, resp.Cookies()[0].Expires.IsZero())
	assert.True(t, resp.Cookies()[0].HttpOnly)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestApp(t)
	env.seedUser(t, "taken@example.com", "secret123")

	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{"duplicate email", url.Values{"name": {"B"}, "email": {"taken@example.com"}, "password": {"secret123"}, "confirm_password": {"secret123"}}, "email"},
		{"password too short", url.Values{"name": {"B"}, "email": {"b@example.com"}, "password": {"abc1234"}, "confirm_password": {"abc1234"}}, "password"},
		{"password too long", url.Values{"name": {"B"}, "email": {"b@example.com"}, "password": {"abcdefghij12345678901"}, "confirm_password": {"abcdefghij12345678901"}}, "password"},
		{"password with symbol", url.Values{"name": {"B"}, "email": {"b@example.com"}, "password": {"secret_12"}, "confirm_password": {"secret_12"}}, "password"},
		{"confirmation mismatch", url.Values{"name": {"B"}, "email": {"b@example.com"}, "password": {"secret123"}, "confirm_password": {"secret321"}}, "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.client(t).postForm("/register", tt.form)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, resp.Cookies())
			fields, ok := decode(t, resp)["fields"].(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, fields, tt.field)
		})
	}
	assert.Equal(t, int64(1), env.count(t, &model.User{}, "1 = 1"))
}
