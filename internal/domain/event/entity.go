package event

import (
	"time"
)

// EventID - тип для ID события (UUID в строковом виде)
type EventID string

// SessionID - тип для ID сессии события
type SessionID string

// AttendeeID - тип для ID записи регистрации
type AttendeeID string

// EventType - тип события
type EventType string

const (
	EventTypeSingle    EventType = "SINGLE"
	EventTypeCourse    EventType = "COURSE"
	EventTypeWorkshop  EventType = "WORKSHOP"
	EventTypeRecurring EventType = "RECURRING"
)

// EventStatus - статус жизненного цикла события
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusArchived  EventStatus = "ARCHIVED"
	EventStatusOnline    EventStatus = "ONLINE"
)

// RecurrencePattern - правило повторения события
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "DAILY"
	RecurrenceWeekly  RecurrencePattern = "WEEKLY"
	RecurrenceMonthly RecurrencePattern = "MONTHLY"
	RecurrenceCustom  RecurrencePattern = "CUSTOM"
)

// AttendeeStatus - статус регистрации пользователя на событие
type AttendeeStatus string

const (
	AttendeeStatusRegistered AttendeeStatus = "REGISTERED"
	AttendeeStatusCancelled  AttendeeStatus = "CANCELLED"
)

// OrganizerType - кто выступает организатором события
type OrganizerType string

const (
	OrganizerUser     OrganizerType = "USER"
	OrganizerDivision OrganizerType = "DIVISION"
	OrganizerClub     OrganizerType = "CLUB"
	OrganizerExternal OrganizerType = "EXTERNAL"
)

// Organizer - полиморфная ссылка на организатора.
// Заполнено ровно одно поле, соответствующее Type.
type Organizer struct {
	Type         OrganizerType
	UserID       string
	DivisionID   string
	ClubID       string
	ExternalName string
}

// Validate проверяет, что заполнено ровно одно ссылочное поле
// и оно соответствует типу организатора.
func (o Organizer) Validate() error {
	var populated int
	for _, ref := range []string{o.UserID, o.DivisionID, o.ClubID, o.ExternalName} {
		if ref != "" {
			populated++
		}
	}
	if populated != 1 {
		return &ValidationError{Field: "organizer", Reason: "exactly one organizer reference must be set"}
	}

	var want string
	switch o.Type {
	case OrganizerUser:
		want = o.UserID
	case OrganizerDivision:
		want = o.DivisionID
	case OrganizerClub:
		want = o.ClubID
	case OrganizerExternal:
		want = o.ExternalName
	default:
		return &ValidationError{Field: "organizerType", Reason: "unknown organizer type"}
	}
	if want == "" {
		return &ValidationError{Field: "organizer", Reason: "organizer reference does not match organizer type"}
	}
	return nil
}

// Ref возвращает заполненное ссылочное поле организатора.
func (o Organizer) Ref() string {
	switch o.Type {
	case OrganizerUser:
		return o.UserID
	case OrganizerDivision:
		return o.DivisionID
	case OrganizerClub:
		return o.ClubID
	case OrganizerExternal:
		return o.ExternalName
	}
	return ""
}

// Recurrence - полный набор полей повторения. У повторяющегося события
// заполнены все четыре обязательных поля (pattern, interval, start, end).
type Recurrence struct {
	Pattern   RecurrencePattern
	Interval  int
	StartDate time.Time
	EndDate   time.Time
	Days      []time.Weekday // используется WEEKLY/CUSTOM
}

// Event представляет событие в доменной модели.
// StartTime/EndTime хранятся строками "HH:MM" (24ч), даты - полночь UTC.
type Event struct {
	ID                     EventID
	Name                   string
	Description            string
	Type                   EventType
	Status                 EventStatus
	StartDate              time.Time
	EndDate                time.Time
	StartTime              string
	EndTime                string
	SessionDurationMinutes int
	IsRecurring            bool
	Recurrence             *Recurrence
	IsPublic               bool
	MaxParticipants        *int // nil = без ограничения
	Organizer              Organizer
	CreatedBy              string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// EventSession - одно конкретное вхождение события в календаре.
type EventSession struct {
	ID                 SessionID
	EventID            EventID
	SessionDate        time.Time
	StartTime          string
	EndTime            string
	IsCancelled        bool
	CancellationReason string
}

// EventAttendee - запись регистрации пользователя на событие.
type EventAttendee struct {
	ID        AttendeeID
	EventID   EventID
	UserID    string
	Status    AttendeeStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateEventInput - DTO для создания события
type CreateEventInput struct {
	Name                   string
	Description            string
	Type                   EventType
	StartDate              time.Time
	EndDate                time.Time
	StartTime              string
	EndTime                string
	SessionDurationMinutes int
	IsRecurring            bool
	RecurrencePattern      RecurrencePattern
	RecurrenceInterval     int
	RecurrenceStartDate    time.Time
	RecurrenceEndDate      time.Time
	RecurrenceDays         []time.Weekday
	IsPublic               bool
	MaxParticipants        *int
	Organizer              Organizer
}

// UpdateEventInput - DTO для частичного обновления события.
// nil-поле означает "не трогать"; очистка лимита мест - отдельным флагом,
// чтобы отличать пропущенное поле от явного сброса.
type UpdateEventInput struct {
	Name                   *string
	Description            *string
	Type                   *EventType
	Status                 *EventStatus
	StartDate              *time.Time
	EndDate                *time.Time
	StartTime              *string
	EndTime                *string
	SessionDurationMinutes *int
	IsRecurring            *bool
	RecurrencePattern      *RecurrencePattern
	RecurrenceInterval     *int
	RecurrenceStartDate    *time.Time
	RecurrenceEndDate      *time.Time
	RecurrenceDays         *[]time.Weekday
	IsPublic               *bool
	MaxParticipants        *int
	ClearMaxParticipants   bool
	Organizer              *Organizer
}

// validateEvent проверяет структурные инварианты события целиком.
// Вызывается и при создании, и после слияния патча при обновлении.
func validateEvent(e *Event) error {
	if e.Name == "" {
		return &ValidationError{Field: "name", Reason: "event name is required"}
	}
	switch e.Type {
	case EventTypeSingle, EventTypeCourse, EventTypeWorkshop, EventTypeRecurring:
	default:
		return &ValidationError{Field: "eventType", Reason: "unknown event type"}
	}
	switch e.Status {
	case EventStatusDraft, EventStatusPublished, EventStatusArchived, EventStatusOnline:
	default:
		return &ValidationError{Field: "status", Reason: "unknown event status"}
	}
	if err := e.Organizer.Validate(); err != nil {
		return err
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "start and end dates are required"}
	}
	if e.EndDate.Before(e.StartDate) {
		return &ValidationError{Field: "endDate", Reason: "end date must not be before start date"}
	}
	if e.Type == EventTypeSingle && !e.StartDate.Equal(e.EndDate) {
		return &ValidationError{Field: "endDate", Reason: "single event must start and end on the same date"}
	}

	startMin, endMin := -1, -1
	if e.StartTime != "" {
		m, err := ParseTimeOfDay(e.StartTime)
		if err != nil {
			return &ValidationError{Field: "startTime", Reason: "start time must match HH:MM"}
		}
		startMin = m
	}
	if e.EndTime != "" {
		m, err := ParseTimeOfDay(e.EndTime)
		if err != nil {
			return &ValidationError{Field: "endTime", Reason: "end time must match HH:MM"}
		}
		endMin = m
	}
	if startMin >= 0 && endMin >= 0 && startMin >= endMin {
		return &ValidationError{Field: "startTime", Reason: "start time must be before end time"}
	}

	if e.SessionDurationMinutes < 0 {
		return &ValidationError{Field: "sessionDurationMinutes", Reason: "session duration must not be negative"}
	}
	if e.MaxParticipants != nil && *e.MaxParticipants <= 0 {
		return &ValidationError{Field: "maxParticipants", Reason: "max participants must be greater than 0"}
	}

	if e.IsRecurring {
		r := e.Recurrence
		if r == nil {
			return &ValidationError{Field: "recurrence", Reason: "recurring event requires recurrence fields"}
		}
		switch r.Pattern {
		case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		default:
			return &ValidationError{Field: "recurrencePattern", Reason: "unknown recurrence pattern"}
		}
		if r.Interval < 1 {
			return &ValidationError{Field: "recurrenceInterval", Reason: "recurrence interval must be at least 1"}
		}
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			return &ValidationError{Field: "recurrenceStartDate", Reason: "recurrence start and end dates are required"}
		}
		if (r.Pattern == RecurrenceWeekly || r.Pattern == RecurrenceCustom) && len(r.Days) == 0 {
			return &ValidationError{Field: "recurrenceDays", Reason: "weekly/custom recurrence requires at least one weekday"}
		}
	} else if e.Recurrence != nil {
		return &ValidationError{Field: "recurrence", Reason: "recurrence fields set on a non-recurring event"}
	}

	return nil
}
