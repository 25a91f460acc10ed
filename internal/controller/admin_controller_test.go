package controller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/store"
)

func adminClient(t *testing.T, env *testEnv) (*client, *model.Administrator) {
	t.Helper()
	admin := env.seedAdmin(t, "olga@dreamhouse.by", "adminpass1")
	return signedIn(t, env, "olga@dreamhouse.by", "adminpass1"), admin
}

func TestAdminDashboard(t *testing.T) {
	env := setupTestApp(t)
	c, admin := adminClient(t, env)
	env.seedEstate(t, model.EstateTypeHouse, model.BedroomsOne, 1)

	body := decode(t, c.get("/admin"))
	assert.Equal(t, float64(admin.ID), body["administrator"].(map[string]interface{})["id"])
	assert.NotContains(t, body["administrator"], "password")
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_estates"])
	assert.Equal(t, float64(1), stats["total_administrators"])
}

func TestAdminEstateCRUD(t *testing.T) {
	env := setupTestApp(t)
	c, admin := adminClient(t, env)

	resp := c.sendJSON(http.MethodPost, "/admin/estates", map[string]interface{}{
		"type": "apartment", "location": "Minsk, Nemiga", "cost": 125000, "bedrooms": "2",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, float64(admin.ID), created["admin_id"])
	assert.Equal(t, "USD", created["currency"])
	id := uint(created["id"].(float64))

	resp = c.sendJSON(http.MethodPost, "/admin/estates", map[string]interface{}{
		"type": "castle", "location": "Mir", "cost": 1, "bedrooms": "9",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "bedrooms")

	resp = c.sendJSON(http.MethodPut, fmt.Sprintf("/admin/estates/%d", id), map[string]interface{}{
		"type": "apartment", "location": "Minsk, Nemiga", "cost": 120000, "currency": "BYN", "bedrooms": "2",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "BYN", decode(t, resp)["currency"])

	body := decode(t, c.get("/admin/estates?q=nemiga&currency=BYN&sort=-cost"))
	assert.Equal(t, float64(1), body["total_results"])

	resp = c.do(http.MethodDelete, fmt.Sprintf("/admin/estates/%d", id), nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, fiber.StatusNotFound, c.get(fmt.Sprintf("/admin/estates/%d", id)).StatusCode)
}

func TestAdminMessageAssignment(t *testing.T) {
	env := setupTestApp(t)
	c, admin := adminClient(t, env)
	msg, err := env.store.CreateMessage(context.Background(), store.MessageInput{
		FullName: "Ivan", Email: "ivan@example.com", Message: "Hi", PageURL: "/",
	})
	require.NoError(t, err)
	path := fmt.Sprintf("/admin/messages/%d", msg.ID)

	resp := c.sendJSON(http.MethodPut, path, map[string]interface{}{"admin_id": 999})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = c.sendJSON(http.MethodPut, path, map[string]interface{}{"admin_id": admin.ID, "message": "tampered"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(admin.ID), body["admin_id"])
	assert.Equal(t, "Hi", body["message"])

	body = decode(t, c.get("/admin/messages?admin_id=none"))
	assert.Equal(t, float64(0), body["total_results"])

	assert.Equal(t, fiber.StatusMethodNotAllowed, c.do(http.MethodDelete, path, nil, "").StatusCode)
	assert.Equal(t, fiber.StatusMethodNotAllowed, c.sendJSON(http.MethodPost, "/admin/messages", map[string]string{}).StatusCode)
}

func TestAdminAdministratorsCannotBeDeleted(t *testing.T) {
	env := setupTestApp(t)
	c, admin := adminClient(t, env)

	resp := c.do(http.MethodDelete, fmt.Sprintf("/admin/administrators/%d", admin.ID), nil, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(1), env.count(t, &model.Administrator{}, "1 = 1"))

	resp = c.sendJSON(http.MethodPost, "/admin/administrators", map[string]interface{}{
		"full_name": "Pavel", "email": "pavel@dreamhouse.by", "password": "short", "confirm_password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = c.sendJSON(http.MethodPost, "/admin/administrators", map[string]interface{}{
		"full_name": "Pavel", "email": "pavel@dreamhouse.by", "password": "pavelpass1", "confirm_password": "pavelpass1",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotContains(t, decode(t, resp), "password")
}

func TestAdminUsersAndExport(t *testing.T) {
	env := setupTestApp(t)
	c, _ := adminClient(t, env)

	resp := c.sendJSON(http.MethodPost, "/admin/users", map[string]interface{}{
		"name": "Anna", "email": "anna@example.com", "password": "secret123", "confirm_password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := uint(decode(t, resp)["id"].(float64))

	user, err := env.store.GetUser(context.Background(), id)
	require.NoError(t, err)

	resp = c.get("/admin/users/export")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "anna@example.com")
	assert.NotContains(t, string(raw), user.Password)

	resp = c.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, fiber.StatusNotFound, c.get(fmt.Sprintf("/admin/users/%d", id)).StatusCode)
}
