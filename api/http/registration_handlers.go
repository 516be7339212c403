package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"clubhub/internal/domain/event"
)

type attendeeResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Register записывает текущего пользователя на событие
func (h *Handlers) Register(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	att, err := h.events.Register(c.Context(), event.EventID(c.Params("id")), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"attendee": toAttendeeResponse(att)})
}

// CancelRegistration отменяет регистрацию текущего пользователя
func (h *Handlers) CancelRegistration(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	att, err := h.events.CancelRegistration(c.Context(), event.EventID(c.Params("id")), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"attendee": toAttendeeResponse(att)})
}

// ListAttendees возвращает все регистрации события
func (h *Handlers) ListAttendees(c *fiber.Ctx) error {
	attendees, err := h.events.ListAttendees(c.Context(), event.EventID(c.Params("id")))
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]attendeeResponse, len(attendees))
	for i := range attendees {
		out[i] = toAttendeeResponse(&attendees[i])
	}
	return c.JSON(out)
}

func toAttendeeResponse(att *event.EventAttendee) attendeeResponse {
	return attendeeResponse{
		ID:        string(att.ID),
		EventID:   string(att.EventID),
		UserID:    att.UserID,
		Status:    string(att.Status),
		CreatedAt: att.CreatedAt.Format(time.RFC3339),
		UpdatedAt: att.UpdatedAt.Format(time.RFC3339),
	}
}
