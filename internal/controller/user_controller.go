package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/internal/search"
	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
)

// Every handler in this file runs behind middleware.RequireUser, so the
// session always names a user.

func (h *Handler) Profile(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	user, err := h.store.GetUser(c.UserContext(), sess.ID)
	if errors.Is(err, store.ErrNotFound) {
		h.sessions.Clear(c)
		return c.Redirect("/login", fiber.StatusFound)
	}
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user.GetPublicProfile(),
	})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	input := new(store.UserInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	sess := session.FromCtx(c)
	user, err := h.store.UpdateUser(c.UserContext(), sess.ID, *input)
	if err != nil {
		return h.respondError(c, err)
	}

	// Refresh the cached name and email carried by the cookie.
	if err := h.sessions.Establish(c, session.ForUser(user.ID, user.Name, user.Email), sess.Persistent); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Changes saved successfully",
		"user":    user.GetPublicProfile(),
	})
}

func (h *Handler) Favorites(c *fiber.Ctx) error {
	page, err := h.store.ListFavorites(c.UserContext(), session.FromCtx(c).ID, search.ParsePage(c.Query("page")))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) History(c *fiber.Ctx) error {
	page, err := h.store.ListHistory(c.UserContext(), session.FromCtx(c).ID, search.ParsePage(c.Query("page")))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(page)
}

// ClearHistory only ever clears the caller's own history.
func (h *Handler) ClearHistory(c *fiber.Ctx) error {
	n, err := h.store.ClearHistory(c.UserContext(), session.FromCtx(c).ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "View history cleared",
		"deleted": n,
	})
}

func (h *Handler) AddToFavorites(c *fiber.Ctx) error {
	estateID, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}

	added, err := h.store.AddFavorite(c.UserContext(), session.FromCtx(c).ID, estateID)
	if err != nil {
		return h.respondError(c, err)
	}

	msg := "Estate added to your favorites"
	if !added {
		msg = "This estate is already in your favorites"
	}
	return c.JSON(fiber.Map{
		"message":     msg,
		"added":       added,
		"is_favorite": true,
	})
}

func (h *Handler) RemoveFromFavorites(c *fiber.Ctx) error {
	estateID, ok := paramID(c, "id")
	if !ok {
		return h.respondError(c, store.ErrNotFound)
	}

	removed, err := h.store.RemoveFavorite(c.UserContext(), session.FromCtx(c).ID, estateID)
	if err != nil {
		return h.respondError(c, err)
	}

	msg := "Estate removed from your favorites"
	if !removed {
		msg = "This estate was not in your favorites"
	}
	return c.JSON(fiber.Map{
		"message":     msg,
		"removed":     removed,
		"is_favorite": false,
	})
}

// DeleteAccount removes the caller's account and signs them out.
func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	if err := h.store.DeleteUser(c.UserContext(), sess.ID); err != nil {
		return h.respondError(c, err)
	}

	h.sessions.Clear(c)
	return c.JSON(fiber.Map{
		"message":  "Account deleted",
		"redirect": "/",
	})
}
