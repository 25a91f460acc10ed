package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/internal/search"
	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
)

// Dashboard is the admin console landing page.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	admin, err := h.store.GetAdministrator(ctx, session.FromCtx(c).ID)
	if err != nil {
		return h.respondError(c, err)
	}

	stats, err := h.store.DashboardStats(ctx, time.Now())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"administrator": admin,
		"stats":         stats,
	})
}

var reservedListParams = map[string]bool{"q": true, "sort": true, "page": true}

// listQuery reads q, sort and page; every other query parameter is a
// column filter.
func listQuery(c *fiber.Ctx) store.ListQuery {
	lq := store.ListQuery{
		Search:  c.Query("q"),
		Sort:    c.Query("sort"),
		Page:    search.ParsePage(c.Query("page")),
		Filters: map[string]string{},
	}
	for k, v := range c.Queries() {
		if !reservedListParams[k] {
			lq.Filters[k] = v
		}
	}
	return lq
}

func (h *Handler) sendCSV(c *fiber.Ctx, name string, export func(context.Context, store.ListQuery, io.Writer) error) error {
	var buf bytes.Buffer
	if err := export(c.UserContext(), listQuery(c), &buf); err != nil {
		return h.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_%s.csv"`, name, time.Now().UTC().Format("20060102")))
	return c.Send(buf.Bytes())
}

// Estates

func (h *Handler) AdminListEstates(c *fiber.Ctx) error {
	page, err := h.store.AdminListEstates(c.UserContext(), listQuery(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) AdminExportEstates(c *fiber.Ctx) error {
	return h.sendCSV(c, "estates", h.store.ExportEstates)
}

func (h *Handler) AdminGetEstate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	estate, err := h.store.GetEstate(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(estate)
}

func (h *Handler) AdminCreateEstate(c *fiber.Ctx) error {
	input := new(store.EstateInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	estate, err := h.store.CreateEstate(c.UserContext(), *input, session.FromCtx(c).ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estate)
}

func (h *Handler) AdminUpdateEstate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	input := new(store.EstateInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	estate, err := h.store.UpdateEstate(c.UserContext(), id, *input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(estate)
}

func (h *Handler) AdminDeleteEstate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	if err := h.store.DeleteEstate(c.UserContext(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Messages

type AssignMessageInput struct {
	AdminID *uint `json:"admin_id" form:"admin_id"`
}

func (h *Handler) AdminListMessages(c *fiber.Ctx) error {
	page, err := h.store.AdminListMessages(c.UserContext(), listQuery(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) AdminExportMessages(c *fiber.Ctx) error {
	return h.sendCSV(c, "messages", h.store.ExportMessages)
}

func (h *Handler) AdminGetMessage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	msg, err := h.store.GetMessage(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(msg)
}

// AdminAssignMessage is the only edit allowed on a message.
func (h *Handler) AdminAssignMessage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	input := new(AssignMessageInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	msg, err := h.store.AssignMessage(c.UserContext(), id, input.AdminID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(msg)
}

// Administrators

func (h *Handler) AdminListAdministrators(c *fiber.Ctx) error {
	page, err := h.store.AdminListAdministrators(c.UserContext(), listQuery(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) AdminExportAdministrators(c *fiber.Ctx) error {
	return h.sendCSV(c, "administrators", h.store.ExportAdministrators)
}

func (h *Handler) AdminGetAdministrator(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	admin, err := h.store.GetAdministrator(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(admin)
}

func (h *Handler) AdminCreateAdministrator(c *fiber.Ctx) error {
	input := new(store.AdministratorInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	admin, err := h.store.CreateAdministrator(c.UserContext(), *input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *Handler) AdminUpdateAdministrator(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	input := new(store.AdministratorInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	admin, err := h.store.UpdateAdministrator(c.UserContext(), id, *input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(admin)
}

func (h *Handler) AdminDeleteAdministrator(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	return h.respondError(c, h.store.DeleteAdministrator(c.UserContext(), id))
}

// Users

func (h *Handler) AdminListUsers(c *fiber.Ctx) error {
	page, err := h.store.AdminListUsers(c.UserContext(), listQuery(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) AdminExportUsers(c *fiber.Ctx) error {
	return h.sendCSV(c, "users", h.store.ExportUsers)
}

func (h *Handler) AdminGetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	user, err := h.store.GetUser(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) AdminCreateUser(c *fiber.Ctx) error {
	input := new(store.UserInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	user, err := h.store.RegisterUser(c.UserContext(), *input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handler) AdminUpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	input := new(store.UserInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	user, err := h.store.UpdateUser(c.UserContext(), id, *input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}
	if err := h.store.DeleteUser(c.UserContext(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
