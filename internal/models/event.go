package models

import (
	"time"

	"gorm.io/gorm"
)

// EventGORM — таблица `events`
type EventGORM struct {
	ID                     uint       `gorm:"primaryKey" json:"-"`
	EventID                string     `gorm:"uniqueIndex;size:36" json:"-"` // UUID
	Name                   string     `gorm:"size:255;not null" json:"name"`
	Description            string     `gorm:"type:text" json:"description"`
	Type                   string     `gorm:"size:20;not null" json:"type"`   // SINGLE, COURSE, WORKSHOP, RECURRING
	Status                 string     `gorm:"size:20;not null" json:"status"` // DRAFT, PUBLISHED, ARCHIVED, ONLINE
	StartDate              time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate                time.Time  `gorm:"not null" json:"end_date"`
	StartTime              string     `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime                string     `gorm:"size:5" json:"end_time"`
	SessionDurationMinutes int        `json:"session_duration_minutes"`
	IsRecurring            bool       `gorm:"not null;default:false" json:"is_recurring"`
	RecurrencePattern      string     `gorm:"size:20" json:"recurrence_pattern"`
	RecurrenceInterval     int        `json:"recurrence_interval"`
	RecurrenceStartDate    *time.Time `json:"recurrence_start_date"`
	RecurrenceEndDate      *time.Time `json:"recurrence_end_date"`
	RecurrenceDays         string     `gorm:"size:32" json:"recurrence_days"` // индексы дней недели, напр. "1,3,5"
	IsPublic               bool       `gorm:"not null;default:false" json:"is_public"`
	MaxParticipants        *int       `json:"max_participants"` // NULL = без ограничения
	OrganizerType          string     `gorm:"size:20;not null" json:"organizer_type"`
	OrganizerUserID        string     `gorm:"size:36" json:"organizer_user_id"`
	OrganizerDivisionID    string     `gorm:"size:36" json:"organizer_division_id"`
	OrganizerClubID        string     `gorm:"size:36" json:"organizer_club_id"`
	OrganizerExternal      string     `gorm:"size:255" json:"organizer_external"`
	CreatedBy              string     `gorm:"size:36;not null;index" json:"created_by"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

func (EventGORM) TableName() string { return "events" }

// EventSessionGORM — таблица `event_sessions`: конкретные вхождения события.
// Сессии полностью принадлежат событию и пересоздаются пачкой.
type EventSessionGORM struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	SessionID          string    `gorm:"uniqueIndex;size:36" json:"-"`
	EventID            string    `gorm:"size:36;not null;index" json:"event_id"`
	SessionDate        time.Time `gorm:"not null;index" json:"session_date"`
	StartTime          string    `gorm:"size:5" json:"start_time"`
	EndTime            string    `gorm:"size:5" json:"end_time"`
	IsCancelled        bool      `gorm:"not null;default:false" json:"is_cancelled"`
	CancellationReason string    `gorm:"size:255" json:"cancellation_reason"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (EventSessionGORM) TableName() string { return "event_sessions" }

// EventAttendeeGORM — таблица `event_attendees`.
// Уникальность пары (event_id, user_id) обеспечивается проверкой перед
// вставкой на уровне сервиса, а не constraint'ом в базе.
type EventAttendeeGORM struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	AttendeeID string `gorm:"uniqueIndex;size:36" json:"-"`
	EventID    string `gorm:"size:36;not null;index" json:"event_id"`
	UserID     string `gorm:"size:36;not null;index" json:"user_id"`
	Status     string `gorm:"size:20;not null" json:"status"` // REGISTERED, CANCELLED
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EventAttendeeGORM) TableName() string { return "event_attendees" }
