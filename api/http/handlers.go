package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"clubhub/internal/domain/event"
)

// Handlers связывает HTTP-слой с доменными сервисами
type Handlers struct {
	events event.EventService
}

func NewHandlers(events event.EventService) *Handlers {
	return &Handlers{events: events}
}

// fail переводит доменную ошибку в HTTP-ответ с кодом классификации.
// Неожиданные ошибки нижних слоев наружу уходят плоским "internal error",
// оригинал остается в логе.
func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	var conflictErr *event.ConflictError
	if errors.As(err, &conflictErr) {
		ids := make([]string, len(conflictErr.Conflicts))
		for i, evt := range conflictErr.Conflicts {
			ids[i] = string(evt.ID)
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":             err.Error(),
			"code":              "SCHEDULE_CONFLICT",
			"conflicting_event": ids,
		})
	}

	switch {
	case errors.Is(err, event.ErrInvalidEventData):
		return h.failWith(c, fiber.StatusBadRequest, "INVALID_EVENT_DATA", err)
	case errors.Is(err, event.ErrForbidden):
		return h.failWith(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, event.ErrEventNotFound):
		return h.failWith(c, fiber.StatusNotFound, "EVENT_NOT_FOUND", err)
	case errors.Is(err, event.ErrNotRegistered):
		return h.failWith(c, fiber.StatusNotFound, "NOT_REGISTERED", err)
	case errors.Is(err, event.ErrScheduleConflict):
		return h.failWith(c, fiber.StatusConflict, "SCHEDULE_CONFLICT", err)
	case errors.Is(err, event.ErrAlreadyRegistered):
		return h.failWith(c, fiber.StatusConflict, "ALREADY_REGISTERED", err)
	case errors.Is(err, event.ErrAlreadyCancelled):
		return h.failWith(c, fiber.StatusConflict, "ALREADY_CANCELLED", err)
	case errors.Is(err, event.ErrEventFull):
		return h.failWith(c, fiber.StatusConflict, "EVENT_FULL", err)
	case errors.Is(err, event.ErrEventNotAvailable):
		return h.failWith(c, fiber.StatusConflict, "EVENT_NOT_AVAILABLE", err)
	default:
		log.Printf("[error] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
			"code":  "INTERNAL",
		})
	}
}

func (h *Handlers) failWith(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}
