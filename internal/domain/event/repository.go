package event

import (
	"context"
	"time"
)

// EventRepository описывает, что нужно домену от хранилища событий
type EventRepository interface {
	// GetByID возвращает событие по ID или nil, если не найдено
	GetByID(ctx context.Context, id EventID) (*Event, error)

	// List возвращает все события
	List(ctx context.Context) ([]Event, error)

	// ListByStartDate возвращает события, начинающиеся в указанную дату
	// (используется детектором пересечений расписания)
	ListByStartDate(ctx context.Context, date time.Time) ([]Event, error)

	// ListByOrganizer возвращает события указанного организатора
	ListByOrganizer(ctx context.Context, organizer Organizer) ([]Event, error)

	// Save создаёт или обновляет событие
	Save(ctx context.Context, evt *Event) error

	// Delete удаляет событие по ID
	Delete(ctx context.Context, id EventID) error

	// CreateSessions сохраняет пачку сессий события
	CreateSessions(ctx context.Context, sessions []EventSession) error

	// ListSessions возвращает сессии события по возрастанию даты
	ListSessions(ctx context.Context, eventID EventID) ([]EventSession, error)

	// DeleteSessions удаляет все сессии события
	DeleteSessions(ctx context.Context, eventID EventID) error
}

// AttendeeRepository описывает хранилище регистраций на события
type AttendeeRepository interface {
	// GetByEventAndUser возвращает запись регистрации пары (событие,
	// пользователь) в любом статусе или nil, если записи нет
	GetByEventAndUser(ctx context.Context, eventID EventID, userID string) (*EventAttendee, error)

	// ListByEvent возвращает все регистрации события
	ListByEvent(ctx context.Context, eventID EventID) ([]EventAttendee, error)

	// CountRegistered возвращает число регистраций события в статусе
	// REGISTERED (отменённые места не занимают)
	CountRegistered(ctx context.Context, eventID EventID) (int, error)

	// Save создаёт или обновляет запись регистрации
	Save(ctx context.Context, att *EventAttendee) error

	// DeleteByEvent удаляет все регистрации события
	DeleteByEvent(ctx context.Context, eventID EventID) error
}
