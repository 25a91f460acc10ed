package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/internal/search"
	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
)

// Home is the paginated listing index.
func (h *Handler) Home(c *fiber.Ctx) error {
	page, err := h.store.SearchEstates(c.UserContext(), search.Criteria{}, search.ParsePage(c.Query("page")))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

// ListEstates returns every listing.
func (h *Handler) ListEstates(c *fiber.Ctx) error {
	estates, err := h.store.ListEstates(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"estate": estates,
	})
}

// GetEstate shows one listing. Views by signed-in users are recorded in
// their history.
func (h *Handler) GetEstate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}

	ctx := c.UserContext()
	estate, err := h.store.GetEstate(ctx, id)
	if err != nil {
		return h.respondError(c, err)
	}

	isFavorite := false
	if sess := session.FromCtx(c); sess.IsUser() {
		switch err := h.store.RecordView(ctx, sess.ID, estate.ID); {
		case errors.Is(err, store.ErrNotFound):
			// Account deleted elsewhere; drop the stale cookie.
			h.sessions.Clear(c)
		case err != nil:
			return h.respondError(c, err)
		default:
			if isFavorite, err = h.store.IsFavorite(ctx, sess.ID, estate.ID); err != nil {
				return h.respondError(c, err)
			}
		}
	}

	return c.JSON(fiber.Map{
		"estate":      estate,
		"is_favorite": isFavorite,
	})
}

// Search filters listings by bedrooms, type and price_range.
func (h *Handler) Search(c *fiber.Ctx) error {
	criteria, err := search.ParseCriteria(c.Query("bedrooms"), c.Query("type"), c.Query("price_range"))
	if err != nil {
		return h.respondError(c, err)
	}

	page, err := h.store.SearchEstates(c.UserContext(), criteria, search.ParsePage(c.Query("page")))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

// SendMessage stores a contact-form submission.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var input store.MessageInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	msg, err := h.store.CreateMessage(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your message has been sent",
		"data":    msg,
	})
}
