package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"dreamhouse_backend/internal/middleware"
)

type AppOptions struct {
	CORSOrigins string
	AccessLog   bool
}

// NewApp builds the Fiber application with every route registered.
func NewApp(h *Handler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "DreamHouse",
		ErrorHandler: h.errorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowCredentials: opts.CORSOrigins != "*",
		}))
	}
	app.Use(h.sessions.Middleware())

	setupRoutes(app, h)
	return app
}

// errorHandler never echoes internal error text to the client.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	h.log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func setupRoutes(app *fiber.App, h *Handler) {
	// Public routes
	app.Get("/", h.Home)
	app.Get("/api/estate", h.ListEstates)
	app.Get("/estateitem/:id", h.GetEstate)
	app.Post("/sent-message", h.SendMessage)
	app.Get("/search", h.Search)

	// Auth routes
	app.Get("/login", h.LoginPage)
	app.Post("/login", h.Login)
	app.Get("/logout", h.Logout)
	app.Get("/register", h.RegisterPage)
	app.Post("/register", h.Register)

	// User routes
	requireUser := middleware.RequireUser(h.store, h.sessions)
	user := app.Group("/user", requireUser)
	user.Get("/profile", h.Profile)
	user.Get("/profile/edit", h.Profile)
	user.Post("/profile/edit", h.UpdateProfile)
	user.Get("/favorites", h.Favorites)
	user.Get("/history", h.History)
	user.Post("/clear_history", h.ClearHistory)
	user.Post("/delete_account", h.DeleteAccount)
	app.Post("/add_to_favorites/:id", requireUser, h.AddToFavorites)
	app.Post("/remove_from_favorites/:id", requireUser, h.RemoveFromFavorites)

	// Admin console
	admin := app.Group("/admin", middleware.RequireAdmin())
	admin.Get("/", h.Dashboard)

	estates := admin.Group("/estates")
	estates.Get("/", h.AdminListEstates)
	estates.Get("/export", h.AdminExportEstates)
	estates.Get("/:id", h.AdminGetEstate)
	estates.Post("/", h.AdminCreateEstate)
	estates.Put("/:id", h.AdminUpdateEstate)
	estates.Delete("/:id", h.AdminDeleteEstate)

	messages := admin.Group("/messages")
	messages.Get("/", h.AdminListMessages)
	messages.Get("/export", h.AdminExportMessages)
	messages.Get("/:id", h.AdminGetMessage)
	messages.Put("/:id", h.AdminAssignMessage)

	admins := admin.Group("/administrators")
	admins.Get("/", h.AdminListAdministrators)
	admins.Get("/export", h.AdminExportAdministrators)
	admins.Get("/:id", h.AdminGetAdministrator)
	admins.Post("/", h.AdminCreateAdministrator)
	admins.Put("/:id", h.AdminUpdateAdministrator)
	admins.Delete("/:id", h.AdminDeleteAdministrator)

	users := admin.Group("/users")
	users.Get("/", h.AdminListUsers)
	users.Get("/export", h.AdminExportUsers)
	users.Get("/:id", h.AdminGetUser)
	users.Post("/", h.AdminCreateUser)
	users.Put("/:id", h.AdminUpdateUser)
	users.Delete("/:id", h.AdminDeleteUser)
}
