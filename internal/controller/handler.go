package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"dreamhouse_backend/internal/auth"
	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
	"dreamhouse_backend/pkg/email"
	"dreamhouse_backend/pkg/utils/validation"
)

// Handler holds everything the HTTP handlers need. It is built once at
// startup and shared by all requests.
type Handler struct {
	store    *store.Store
	auth     *auth.Authenticator
	sessions *session.Manager
	mailer   email.Mailer
	log      logrus.FieldLogger
}

func NewHandler(s *store.Store, a *auth.Authenticator, sessions *session.Manager, mailer email.Mailer, log logrus.FieldLogger) *Handler {
	return &Handler{store: s, auth: a, sessions: sessions, mailer: mailer, log: log}
}

// respondError maps domain errors to responses. Anything unrecognised is
// logged and reported as a generic 500.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	if ve, ok := validation.As(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, store.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Email already in use",
			"fields": fiber.Map{"email": "This email is already in use, please choose another one"},
		})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, store.ErrNotDeletable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This record cannot be deleted",
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	h.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func invalidInput(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid input",
	})
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// checkbox is an HTML checkbox value; JSON clients may also send a boolean.
type checkbox string

func (b checkbox) On() bool {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

func (b *checkbox) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = checkbox(strconv.FormatBool(v))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = checkbox(s)
	return nil
}

// redirectFor is where a freshly established session should go next.
func redirectFor(s session.Session) string {
	if s.IsAdmin() {
		return "/admin"
	}
	return "/"
}
