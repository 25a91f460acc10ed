package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/internal/session"
)

// UserChecker confirms a user from a session cookie still has an account.
type UserChecker interface {
	UserExists(ctx context.Context, id uint) (bool, error)
}

// RequireUser lets only user sessions through. Anonymous visitors and
// administrators are sent to the login page, as are cookies whose account
// has since been deleted; those cookies are cleared.
func RequireUser(users UserChecker, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.FromCtx(c)
		if !sess.IsUser() {
			return c.Redirect("/login", fiber.StatusFound)
		}

		ok, err := users.UserExists(c.UserContext(), sess.ID)
		if err != nil {
			return err
		}
		if !ok {
			sessions.Clear(c)
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAdmin lets only administrator sessions through.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.FromCtx(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
