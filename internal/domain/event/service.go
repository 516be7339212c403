package event

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/domain/access"
	"clubhub/internal/notify"
)

// EventService описывает use-case'ы вокруг событий.
type EventService interface {
	Get(ctx context.Context, id EventID) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	ListAvailable(ctx context.Context) ([]Event, error)
	ListByOrganizer(ctx context.Context, organizer Organizer) ([]Event, error)
	ListSessions(ctx context.Context, id EventID) ([]EventSession, error)
	ListAttendees(ctx context.Context, id EventID) ([]EventAttendee, error)

	Create(ctx context.Context, actorID string, input CreateEventInput) (*Event, error)
	Update(ctx context.Context, actorID string, id EventID, input UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, actorID string, id EventID) error

	// Регистрация пользователей
	Register(ctx context.Context, eventID EventID, userID string) (*EventAttendee, error)
	CancelRegistration(ctx context.Context, eventID EventID, userID string) (*EventAttendee, error)
}

type eventService struct {
	events    EventRepository
	attendees AttendeeRepository
	perms     access.PermissionChecker
	notifier  notify.Notifier // может быть nil
}

func NewService(events EventRepository, attendees AttendeeRepository, perms access.PermissionChecker, notifier notify.Notifier) EventService {
	return &eventService{
		events:    events,
		attendees: attendees,
		perms:     perms,
		notifier:  notifier,
	}
}

func (s *eventService) Get(ctx context.Context, id EventID) (*Event, error) {
	evt, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}
	return evt, nil
}

func (s *eventService) List(ctx context.Context) ([]Event, error) {
	return s.events.List(ctx)
}

// ListAvailable возвращает открытые для регистрации события со свободными
// местами. Свободность считается сравнением числа REGISTERED-регистраций
// с лимитом, а не проверкой наличия хоть одной регистрации.
func (s *eventService) ListAvailable(ctx context.Context) ([]Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []Event
	for i := range all {
		evt := &all[i]
		if evt.Status != EventStatusPublished && evt.Status != EventStatusOnline {
			continue
		}
		registered, err := s.attendees.CountRegistered(ctx, evt.ID)
		if err != nil {
			return nil, err
		}
		if hasCapacity(evt, registered) {
			out = append(out, *evt)
		}
	}
	return out, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizer Organizer) ([]Event, error) {
	return s.events.ListByOrganizer(ctx, organizer)
}

func (s *eventService) ListSessions(ctx context.Context, id EventID) ([]EventSession, error) {
	evt, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}
	return s.events.ListSessions(ctx, id)
}

func (s *eventService) ListAttendees(ctx context.Context, id EventID) ([]EventAttendee, error) {
	evt, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}
	return s.attendees.ListByEvent(ctx, id)
}

func (s *eventService) Create(ctx context.Context, actorID string, in CreateEventInput) (*Event, error) {
	if err := s.checkPermission(ctx, actorID, access.ActionEventCreate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	evt := &Event{
		ID:                     EventID(uuid.New().String()),
		Name:                   in.Name,
		Description:            in.Description,
		Type:                   in.Type,
		Status:                 EventStatusDraft, // событие всегда создаётся черновиком
		StartDate:              DateOnly(in.StartDate),
		EndDate:                DateOnly(in.EndDate),
		StartTime:              in.StartTime,
		EndTime:                in.EndTime,
		SessionDurationMinutes: in.SessionDurationMinutes,
		IsRecurring:            in.IsRecurring,
		IsPublic:               in.IsPublic,
		MaxParticipants:        in.MaxParticipants,
		Organizer:              in.Organizer,
		CreatedBy:              actorID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if in.IsRecurring {
		evt.Recurrence = &Recurrence{
			Pattern:   in.RecurrencePattern,
			Interval:  in.RecurrenceInterval,
			StartDate: DateOnly(in.RecurrenceStartDate),
			EndDate:   DateOnly(in.RecurrenceEndDate),
			Days:      in.RecurrenceDays,
		}
	}

	// Структурная валидация до любых побочных эффектов
	if err := validateEvent(evt); err != nil {
		return nil, err
	}
	if err := normalizeTimes(evt); err != nil {
		return nil, err
	}

	// Проверка пересечений по собственному окну дата+время события.
	// Проверка и запись - две отдельные операции: одновременные создания
	// могут обе пройти. Закрыть зазор можно только транзакцией в хранилище.
	if err := s.checkConflicts(ctx, evt, ""); err != nil {
		return nil, err
	}

	if err := s.events.Save(ctx, evt); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	// Материализация сессий. Событие к этому моменту уже сохранено: при
	// сбое здесь оно остаётся без сессий, отката нет - вызывающая сторона
	// перегенерирует сессии повторным обновлением.
	if err := s.regenerateSessions(ctx, evt); err != nil {
		return nil, fmt.Errorf("event %s created, session generation failed: %w", evt.ID, err)
	}

	return evt, nil
}

func (s *eventService) Update(ctx context.Context, actorID string, id EventID, in UpdateEventInput) (*Event, error) {
	if err := s.checkPermission(ctx, actorID, access.ActionEventUpdate); err != nil {
		return nil, err
	}

	evt, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}

	before := snapshotScheduleFields(evt)
	applyPatch(evt, in)

	if err := validateEvent(evt); err != nil {
		return nil, err
	}
	if err := normalizeTimes(evt); err != nil {
		return nil, err
	}

	// Исключаем само событие, чтобы оно не конфликтовало со своим же
	// прежним сохранённым состоянием
	if err := s.checkConflicts(ctx, evt, id); err != nil {
		return nil, err
	}

	evt.UpdatedAt = time.Now().UTC()
	if err := s.events.Save(ctx, evt); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	// Если поменялось что-то влияющее на расписание - старые сессии
	// выбрасываются целиком и генерируются заново, без диффа
	if before != snapshotScheduleFields(evt) {
		if err := s.events.DeleteSessions(ctx, id); err != nil {
			return nil, fmt.Errorf("event %s updated, clearing old sessions failed: %w", id, err)
		}
		if err := s.regenerateSessions(ctx, evt); err != nil {
			return nil, fmt.Errorf("event %s updated, session regeneration failed: %w", id, err)
		}
	}

	return evt, nil
}

// Delete удаляет событие каскадом: сначала регистрации и сессии,
// затем сама запись события - осиротевших детей не оставляем.
func (s *eventService) Delete(ctx context.Context, actorID string, id EventID) error {
	if err := s.checkPermission(ctx, actorID, access.ActionEventDelete); err != nil {
		return err
	}

	evt, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if evt == nil {
		return ErrEventNotFound
	}

	if err := s.attendees.DeleteByEvent(ctx, id); err != nil {
		return fmt.Errorf("delete attendees: %w", err)
	}
	if err := s.events.DeleteSessions(ctx, id); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return s.events.Delete(ctx, id)
}

func (s *eventService) Register(ctx context.Context, eventID EventID, userID string) (*EventAttendee, error) {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}
	if evt.Status != EventStatusPublished && evt.Status != EventStatusOnline {
		return nil, ErrEventNotAvailable
	}

	// Запись в любом статусе блокирует повторную регистрацию:
	// после отмены записаться снова нельзя
	existing, err := s.attendees.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	// Проверка мест без блокировки: две одновременные регистрации на
	// последнее место могут обе пройти (задокументированное ограничение)
	registered, err := s.attendees.CountRegistered(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !hasCapacity(evt, registered) {
		return nil, ErrEventFull
	}

	now := time.Now().UTC()
	att := &EventAttendee{
		ID:        AttendeeID(uuid.New().String()),
		EventID:   eventID,
		UserID:    userID,
		Status:    AttendeeStatusRegistered,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.attendees.Save(ctx, att); err != nil {
		return nil, fmt.Errorf("save attendee: %w", err)
	}

	s.notifyf(ctx, "Новая регистрация: пользователь %s на событие «%s»", userID, evt.Name)
	return att, nil
}

func (s *eventService) CancelRegistration(ctx context.Context, eventID EventID, userID string) (*EventAttendee, error) {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}

	att, err := s.attendees.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotRegistered
	}
	if att.Status == AttendeeStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	// Запись не удаляется, только переводится в CANCELLED
	att.Status = AttendeeStatusCancelled
	att.UpdatedAt = time.Now().UTC()
	if err := s.attendees.Save(ctx, att); err != nil {
		return nil, fmt.Errorf("save attendee: %w", err)
	}

	s.notifyf(ctx, "Отмена регистрации: пользователь %s, событие «%s»", userID, evt.Name)
	return att, nil
}

func (s *eventService) checkPermission(ctx context.Context, actorID string, action access.Action) error {
	ok, err := s.perms.HasPermission(ctx, actorID, action)
	if err != nil {
		return fmt.Errorf("permission check: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// checkConflicts ищет события той же даты начала с пересекающимся
// полуоткрытым окном [start, end): встык стоящие события не конфликтуют.
func (s *eventService) checkConflicts(ctx context.Context, evt *Event, exclude EventID) error {
	if evt.StartTime == "" || evt.EndTime == "" {
		return nil
	}
	candStart, err := ParseTimeOfDay(evt.StartTime)
	if err != nil {
		return err
	}
	candEnd, err := ParseTimeOfDay(evt.EndTime)
	if err != nil {
		return err
	}

	sameDay, err := s.events.ListByStartDate(ctx, evt.StartDate)
	if err != nil {
		return fmt.Errorf("list events by date: %w", err)
	}

	var conflicts []Event
	for _, other := range sameDay {
		if exclude != "" && other.ID == exclude {
			continue
		}
		if other.StartTime == "" || other.EndTime == "" {
			continue
		}
		otherStart, err := ParseTimeOfDay(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := ParseTimeOfDay(other.EndTime)
		if err != nil {
			continue
		}
		if otherStart < candEnd && otherEnd > candStart {
			conflicts = append(conflicts, other)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}

// regenerateSessions материализует сессии по форме события:
// SINGLE - одна сессия, повторяющееся - разворачивание правила,
// непериодическое многодневное - по сессии на каждый день.
func (s *eventService) regenerateSessions(ctx context.Context, evt *Event) error {
	var occurrences []Occurrence

	switch {
	case evt.Type == EventTypeSingle:
		occurrences = []Occurrence{{Date: evt.StartDate, StartTime: evt.StartTime, EndTime: evt.EndTime}}
	case evt.IsRecurring && evt.Recurrence != nil:
		occurrences = ExpandOccurrences(ExpansionSpec{
			Pattern:    evt.Recurrence.Pattern,
			Interval:   evt.Recurrence.Interval,
			RangeStart: evt.Recurrence.StartDate,
			RangeEnd:   evt.Recurrence.EndDate,
			Days:       evt.Recurrence.Days,
			StartTime:  evt.StartTime,
			EndTime:    evt.EndTime,
		})
	default:
		occurrences = ExpandDateRange(evt.StartDate, evt.EndDate, evt.StartTime, evt.EndTime)
	}

	sessions := make([]EventSession, len(occurrences))
	for i, occ := range occurrences {
		sessions[i] = EventSession{
			ID:          SessionID(uuid.New().String()),
			EventID:     evt.ID,
			SessionDate: occ.Date,
			StartTime:   occ.StartTime,
			EndTime:     occ.EndTime,
			IsCancelled: false,
		}
	}
	if len(sessions) == 0 {
		return nil
	}
	return s.events.CreateSessions(ctx, sessions)
}

func (s *eventService) notifyf(ctx context.Context, format string, args ...any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, fmt.Sprintf(format, args...)); err != nil {
		log.Printf("[warn] notify: %v", err)
	}
}

// hasCapacity - проверка свободных мест: nil-лимит означает "без ограничения"
func hasCapacity(evt *Event, registered int) bool {
	if evt.MaxParticipants == nil {
		return true
	}
	return registered < *evt.MaxParticipants
}

// normalizeTimes приводит времена события к каноничному виду "HH:MM"
// с ведущими нулями. Вызывается после validateEvent, так что формат
// здесь уже гарантированно корректен.
func normalizeTimes(evt *Event) error {
	if evt.StartTime != "" {
		t, err := NormalizeTimeOfDay(evt.StartTime)
		if err != nil {
			return &ValidationError{Field: "startTime", Reason: err.Error()}
		}
		evt.StartTime = t
	}
	if evt.EndTime != "" {
		t, err := NormalizeTimeOfDay(evt.EndTime)
		if err != nil {
			return &ValidationError{Field: "endTime", Reason: err.Error()}
		}
		evt.EndTime = t
	}
	return nil
}

// applyPatch переносит в событие только присланные поля (merge-patch)
func applyPatch(evt *Event, in UpdateEventInput) {
	if in.Name != nil {
		evt.Name = *in.Name
	}
	if in.Description != nil {
		evt.Description = *in.Description
	}
	if in.Type != nil {
		evt.Type = *in.Type
	}
	if in.Status != nil {
		evt.Status = *in.Status
	}
	if in.StartDate != nil {
		evt.StartDate = DateOnly(*in.StartDate)
	}
	if in.EndDate != nil {
		evt.EndDate = DateOnly(*in.EndDate)
	}
	if in.StartTime != nil {
		evt.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		evt.EndTime = *in.EndTime
	}
	if in.SessionDurationMinutes != nil {
		evt.SessionDurationMinutes = *in.SessionDurationMinutes
	}
	if in.IsPublic != nil {
		evt.IsPublic = *in.IsPublic
	}
	if in.ClearMaxParticipants {
		evt.MaxParticipants = nil
	} else if in.MaxParticipants != nil {
		evt.MaxParticipants = in.MaxParticipants
	}
	if in.Organizer != nil {
		evt.Organizer = *in.Organizer
	}

	if in.IsRecurring != nil {
		evt.IsRecurring = *in.IsRecurring
		if !evt.IsRecurring {
			evt.Recurrence = nil
		}
	}
	if evt.IsRecurring {
		if evt.Recurrence == nil {
			evt.Recurrence = &Recurrence{}
		}
		if in.RecurrencePattern != nil {
			evt.Recurrence.Pattern = *in.RecurrencePattern
		}
		if in.RecurrenceInterval != nil {
			evt.Recurrence.Interval = *in.RecurrenceInterval
		}
		if in.RecurrenceStartDate != nil {
			evt.Recurrence.StartDate = DateOnly(*in.RecurrenceStartDate)
		}
		if in.RecurrenceEndDate != nil {
			evt.Recurrence.EndDate = DateOnly(*in.RecurrenceEndDate)
		}
		if in.RecurrenceDays != nil {
			evt.Recurrence.Days = *in.RecurrenceDays
		}
	}
}

// scheduleSnapshot - сравнимый слепок полей, влияющих на набор сессий
type scheduleSnapshot struct {
	eventType   EventType
	startDate   time.Time
	endDate     time.Time
	startTime   string
	endTime     string
	isRecurring bool
	pattern     RecurrencePattern
	interval    int
	recStart    time.Time
	recEnd      time.Time
	days        string
}

func snapshotScheduleFields(evt *Event) scheduleSnapshot {
	snap := scheduleSnapshot{
		eventType:   evt.Type,
		startDate:   evt.StartDate,
		endDate:     evt.EndDate,
		startTime:   evt.StartTime,
		endTime:     evt.EndTime,
		isRecurring: evt.IsRecurring,
	}
	if evt.Recurrence != nil {
		snap.pattern = evt.Recurrence.Pattern
		snap.interval = evt.Recurrence.Interval
		snap.recStart = evt.Recurrence.StartDate
		snap.recEnd = evt.Recurrence.EndDate
		snap.days = FormatWeekdays(evt.Recurrence.Days)
	}
	return snap
}
