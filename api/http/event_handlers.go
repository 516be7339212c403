package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"clubhub/internal/domain/event"
)

const dateLayout = "2006-01-02"

/* ---------- Структуры для JSON (Event) ----------- */

// createEventRequest — тело запроса на создание события.
// Даты - "YYYY-MM-DD", времена - "HH:MM", дни недели - строка индексов "1,3,5".
type createEventRequest struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	EventType              string `json:"event_type"`
	StartDate              string `json:"start_date"`
	EndDate                string `json:"end_date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	SessionDurationMinutes int    `json:"session_duration_minutes"`
	IsRecurring            bool   `json:"is_recurring"`
	RecurrencePattern      string `json:"recurrence_pattern"`
	RecurrenceInterval     int    `json:"recurrence_interval"`
	RecurrenceStartDate    string `json:"recurrence_start_date"`
	RecurrenceEndDate      string `json:"recurrence_end_date"`
	RecurrenceDays         string `json:"recurrence_days"`
	IsPublic               bool   `json:"is_public"`
	MaxParticipants        *int   `json:"max_participants"`
	OrganizerType          string `json:"organizer_type"`
	OrganizerUserID        string `json:"organizer_user_id"`
	OrganizerDivisionID    string `json:"organizer_division_id"`
	OrganizerClubID        string `json:"organizer_club_id"`
	OrganizerExternal      string `json:"organizer_external"`
}

// updateEventRequest — merge-patch: отсутствующее поле не трогается
type updateEventRequest struct {
	Name                   *string `json:"name"`
	Description            *string `json:"description"`
	EventType              *string `json:"event_type"`
	Status                 *string `json:"status"`
	StartDate              *string `json:"start_date"`
	EndDate                *string `json:"end_date"`
	StartTime              *string `json:"start_time"`
	EndTime                *string `json:"end_time"`
	SessionDurationMinutes *int    `json:"session_duration_minutes"`
	IsRecurring            *bool   `json:"is_recurring"`
	RecurrencePattern      *string `json:"recurrence_pattern"`
	RecurrenceInterval     *int    `json:"recurrence_interval"`
	RecurrenceStartDate    *string `json:"recurrence_start_date"`
	RecurrenceEndDate      *string `json:"recurrence_end_date"`
	RecurrenceDays         *string `json:"recurrence_days"`
	IsPublic               *bool   `json:"is_public"`
	MaxParticipants        *int    `json:"max_participants"`
	ClearMaxParticipants   bool    `json:"clear_max_participants"`
	OrganizerType          *string `json:"organizer_type"`
	OrganizerUserID        *string `json:"organizer_user_id"`
	OrganizerDivisionID    *string `json:"organizer_division_id"`
	OrganizerClubID        *string `json:"organizer_club_id"`
	OrganizerExternal      *string `json:"organizer_external"`
}

type eventResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	EventType              string `json:"event_type"`
	Status                 string `json:"status"`
	StartDate              string `json:"start_date"`
	EndDate                string `json:"end_date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	SessionDurationMinutes int    `json:"session_duration_minutes"`
	IsRecurring            bool   `json:"is_recurring"`
	RecurrencePattern      string `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval     int    `json:"recurrence_interval,omitempty"`
	RecurrenceStartDate    string `json:"recurrence_start_date,omitempty"`
	RecurrenceEndDate      string `json:"recurrence_end_date,omitempty"`
	RecurrenceDays         string `json:"recurrence_days,omitempty"`
	IsPublic               bool   `json:"is_public"`
	MaxParticipants        *int   `json:"max_participants"`
	OrganizerType          string `json:"organizer_type"`
	OrganizerRef           string `json:"organizer_ref"`
	CreatedBy              string `json:"created_by"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

type sessionResponse struct {
	ID                 string `json:"id"`
	EventID            string `json:"event_id"`
	SessionDate        string `json:"session_date"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	IsCancelled        bool   `json:"is_cancelled"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

/* ---------- Handlers для Event ------------------ */

// CreateEvent создает событие в статусе DRAFT
func (h *Handlers) CreateEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	var req createEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	input, err := req.toInput()
	if err != nil {
		return h.fail(c, err)
	}

	evt, err := h.events.Create(c.Context(), userID, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": toEventResponse(evt)})
}

// UpdateEvent применяет частичное обновление события
func (h *Handlers) UpdateEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	var req updateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	input, err := req.toInput()
	if err != nil {
		return h.fail(c, err)
	}

	evt, err := h.events.Update(c.Context(), userID, event.EventID(c.Params("id")), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"event": toEventResponse(evt)})
}

// DeleteEvent удаляет событие вместе с сессиями и регистрациями
func (h *Handlers) DeleteEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	if err := h.events.Delete(c.Context(), userID, event.EventID(c.Params("id"))); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

func (h *Handlers) GetEvent(c *fiber.Ctx) error {
	evt, err := h.events.Get(c.Context(), event.EventID(c.Params("id")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"event": toEventResponse(evt)})
}

func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	events, err := h.events.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(toEventResponses(events))
}

// ListAvailable возвращает события со свободными местами
func (h *Handlers) ListAvailable(c *fiber.Ctx) error {
	events, err := h.events.ListAvailable(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(toEventResponses(events))
}

func (h *Handlers) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.events.ListSessions(c.Context(), event.EventID(c.Params("id")))
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = sessionResponse{
			ID:                 string(s.ID),
			EventID:            string(s.EventID),
			SessionDate:        s.SessionDate.Format(dateLayout),
			StartTime:          s.StartTime,
			EndTime:            s.EndTime,
			IsCancelled:        s.IsCancelled,
			CancellationReason: s.CancellationReason,
		}
	}
	return c.JSON(out)
}

/* ---------- Конвертация DTO <-> домен ------------------ */

func (req createEventRequest) toInput() (event.CreateEventInput, error) {
	input := event.CreateEventInput{
		Name:                   req.Name,
		Description:            req.Description,
		Type:                   event.EventType(req.EventType),
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		SessionDurationMinutes: req.SessionDurationMinutes,
		IsRecurring:            req.IsRecurring,
		RecurrencePattern:      event.RecurrencePattern(req.RecurrencePattern),
		RecurrenceInterval:     req.RecurrenceInterval,
		IsPublic:               req.IsPublic,
		MaxParticipants:        req.MaxParticipants,
		Organizer: event.Organizer{
			Type:         event.OrganizerType(req.OrganizerType),
			UserID:       req.OrganizerUserID,
			DivisionID:   req.OrganizerDivisionID,
			ClubID:       req.OrganizerClubID,
			ExternalName: req.OrganizerExternal,
		},
	}

	var err error
	if input.StartDate, err = parseDate(req.StartDate, "start_date"); err != nil {
		return input, err
	}
	if input.EndDate, err = parseDate(req.EndDate, "end_date"); err != nil {
		return input, err
	}
	if req.RecurrenceStartDate != "" {
		if input.RecurrenceStartDate, err = parseDate(req.RecurrenceStartDate, "recurrence_start_date"); err != nil {
			return input, err
		}
	}
	if req.RecurrenceEndDate != "" {
		if input.RecurrenceEndDate, err = parseDate(req.RecurrenceEndDate, "recurrence_end_date"); err != nil {
			return input, err
		}
	}
	if input.RecurrenceDays, err = parseDays(req.RecurrenceDays); err != nil {
		return input, err
	}
	return input, nil
}

func (req updateEventRequest) toInput() (event.UpdateEventInput, error) {
	input := event.UpdateEventInput{
		Name:                   req.Name,
		Description:            req.Description,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		SessionDurationMinutes: req.SessionDurationMinutes,
		IsRecurring:            req.IsRecurring,
		RecurrenceInterval:     req.RecurrenceInterval,
		IsPublic:               req.IsPublic,
		MaxParticipants:        req.MaxParticipants,
		ClearMaxParticipants:   req.ClearMaxParticipants,
	}

	if req.EventType != nil {
		t := event.EventType(*req.EventType)
		input.Type = &t
	}
	if req.Status != nil {
		s := event.EventStatus(*req.Status)
		input.Status = &s
	}
	if req.RecurrencePattern != nil {
		p := event.RecurrencePattern(*req.RecurrencePattern)
		input.RecurrencePattern = &p
	}
	// Организатор меняется целиком: тип обязателен, ссылки - по типу
	if req.OrganizerType != nil {
		input.Organizer = &event.Organizer{
			Type:         event.OrganizerType(*req.OrganizerType),
			UserID:       strOrEmpty(req.OrganizerUserID),
			DivisionID:   strOrEmpty(req.OrganizerDivisionID),
			ClubID:       strOrEmpty(req.OrganizerClubID),
			ExternalName: strOrEmpty(req.OrganizerExternal),
		}
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate, "start_date")
		if err != nil {
			return input, err
		}
		input.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate, "end_date")
		if err != nil {
			return input, err
		}
		input.EndDate = &d
	}
	if req.RecurrenceStartDate != nil {
		d, err := parseDate(*req.RecurrenceStartDate, "recurrence_start_date")
		if err != nil {
			return input, err
		}
		input.RecurrenceStartDate = &d
	}
	if req.RecurrenceEndDate != nil {
		d, err := parseDate(*req.RecurrenceEndDate, "recurrence_end_date")
		if err != nil {
			return input, err
		}
		input.RecurrenceEndDate = &d
	}
	if req.RecurrenceDays != nil {
		days, err := parseDays(*req.RecurrenceDays)
		if err != nil {
			return input, err
		}
		input.RecurrenceDays = &days
	}
	return input, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseDate(s, field string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &event.ValidationError{Field: field, Reason: "date must match YYYY-MM-DD"}
	}
	return d, nil
}

func parseDays(s string) ([]time.Weekday, error) {
	days, err := event.ParseWeekdays(s)
	if err != nil {
		return nil, &event.ValidationError{Field: "recurrence_days", Reason: "must be comma-separated weekday indices, e.g. \"1,3,5\""}
	}
	return days, nil
}

func toEventResponse(evt *event.Event) eventResponse {
	resp := eventResponse{
		ID:                     string(evt.ID),
		Name:                   evt.Name,
		Description:            evt.Description,
		EventType:              string(evt.Type),
		Status:                 string(evt.Status),
		StartDate:              evt.StartDate.Format(dateLayout),
		EndDate:                evt.EndDate.Format(dateLayout),
		StartTime:              evt.StartTime,
		EndTime:                evt.EndTime,
		SessionDurationMinutes: evt.SessionDurationMinutes,
		IsRecurring:            evt.IsRecurring,
		IsPublic:               evt.IsPublic,
		MaxParticipants:        evt.MaxParticipants,
		OrganizerType:          string(evt.Organizer.Type),
		OrganizerRef:           evt.Organizer.Ref(),
		CreatedBy:              evt.CreatedBy,
		CreatedAt:              evt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              evt.UpdatedAt.Format(time.RFC3339),
	}
	if evt.Recurrence != nil {
		resp.RecurrencePattern = string(evt.Recurrence.Pattern)
		resp.RecurrenceInterval = evt.Recurrence.Interval
		resp.RecurrenceStartDate = evt.Recurrence.StartDate.Format(dateLayout)
		resp.RecurrenceEndDate = evt.Recurrence.EndDate.Format(dateLayout)
		resp.RecurrenceDays = event.FormatWeekdays(evt.Recurrence.Days)
	}
	return resp
}

func toEventResponses(events []event.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	return out
}
