package controller

import (
	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
)

type LoginInput struct {
	Email      string   `json:"email" form:"email"`
	Password   string   `json:"password" form:"password"`
	RememberMe checkbox `json:"remember_me" form:"remember_me"`
}

type RegisterInput struct {
	store.UserInput
	RememberMe checkbox `json:"remember_me" form:"remember_me"`
}

// LoginPage reports the current session so a client can decide whether to
// show the form.
func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"session": session.FromCtx(c),
		"failed":  c.QueryBool("failed"),
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	sess, err := h.auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return h.respondError(c, err)
	}

	if err := h.sessions.Establish(c, sess, input.RememberMe.On()); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"session":  sess,
		"redirect": redirectFor(sess),
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.Redirect("/login", fiber.StatusFound)
}

// RegisterPage lists the fields the registration form needs.
func (h *Handler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fields":  []string{"name", "email", "password", "confirm_password", "remember_me"},
		"session": session.FromCtx(c),
	})
}

// Register creates a user and signs them in.
func (h *Handler) Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return invalidInput(c)
	}

	ctx := c.UserContext()
	user, err := h.store.RegisterUser(ctx, input.UserInput)
	if err != nil {
		return h.respondError(c, err)
	}

	sess := session.ForUser(user.ID, user.Name, user.Email)
	if err := h.sessions.Establish(c, sess, input.RememberMe.On()); err != nil {
		return h.respondError(c, err)
	}

	if h.mailer != nil {
		if err := h.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			h.log.WithError(err).WithField("user_id", user.ID).Error("Failed to send welcome email")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Registration successful",
		"user":     user.GetPublicProfile(),
		"session":  sess,
		"redirect": redirectFor(sess),
	})
}
