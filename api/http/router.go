package http

import (
	"github.com/gofiber/fiber/v2"
)

// Setup регистрирует маршруты подсистемы событий
func Setup(app *fiber.App, h *Handlers) {
	api := app.Group("/api")

	events := api.Group("/events", JWTProtected())
	events.Get("/", h.ListEvents)
	events.Post("/", h.CreateEvent)
	events.Get("/available", h.ListAvailable)
	events.Get("/:id", h.GetEvent)
	events.Patch("/:id", h.UpdateEvent)
	events.Delete("/:id", h.DeleteEvent)
	events.Get("/:id/sessions", h.ListSessions)
	events.Get("/:id/attendees", h.ListAttendees)
	events.Post("/:id/register", h.Register)
	events.Post("/:id/cancel", h.CancelRegistration)
}
