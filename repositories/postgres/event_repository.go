package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhub/internal/domain/event"
	"clubhub/internal/models"

	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) event.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id event.EventID) (*event.Event, error) {
	var model models.EventGORM
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", string(id)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToDomain(&model)
}

func (r *eventRepository) List(ctx context.Context) ([]event.Event, error) {
	var rows []models.EventGORM
	if err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.modelsToDomain(rows)
}

func (r *eventRepository) ListByStartDate(ctx context.Context, date time.Time) ([]event.Event, error) {
	var rows []models.EventGORM
	if err := r.db.WithContext(ctx).
		Where("start_date = ?", event.DateOnly(date)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.modelsToDomain(rows)
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, org event.Organizer) ([]event.Event, error) {
	q := r.db.WithContext(ctx).Where("organizer_type = ?", string(org.Type))
	switch org.Type {
	case event.OrganizerUser:
		q = q.Where("organizer_user_id = ?", org.UserID)
	case event.OrganizerDivision:
		q = q.Where("organizer_division_id = ?", org.DivisionID)
	case event.OrganizerClub:
		q = q.Where("organizer_club_id = ?", org.ClubID)
	case event.OrganizerExternal:
		q = q.Where("organizer_external = ?", org.ExternalName)
	}

	var rows []models.EventGORM
	if err := q.Order("start_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.modelsToDomain(rows)
}

func (r *eventRepository) Save(ctx context.Context, evt *event.Event) error {
	model := r.domainToModel(evt)

	var existing models.EventGORM
	err := r.db.WithContext(ctx).
		Where("event_id = ?", string(evt.ID)).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.db.WithContext(ctx).Create(model).Error
	}

	model.ID = existing.ID
	// Save вместо Updates: merge-patch уже применён в домене, а Updates
	// пропускает zero-value поля и потерял бы явные сбросы (NULL-лимит)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *eventRepository) Delete(ctx context.Context, id event.EventID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", string(id)).
		Delete(&models.EventGORM{}).Error
}

func (r *eventRepository) CreateSessions(ctx context.Context, sessions []event.EventSession) error {
	if len(sessions) == 0 {
		return nil
	}
	rows := make([]models.EventSessionGORM, len(sessions))
	for i, s := range sessions {
		rows[i] = models.EventSessionGORM{
			SessionID:          string(s.ID),
			EventID:            string(s.EventID),
			SessionDate:        event.DateOnly(s.SessionDate),
			StartTime:          s.StartTime,
			EndTime:            s.EndTime,
			IsCancelled:        s.IsCancelled,
			CancellationReason: s.CancellationReason,
		}
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *eventRepository) ListSessions(ctx context.Context, eventID event.EventID) ([]event.EventSession, error) {
	var rows []models.EventSessionGORM
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", string(eventID)).
		Order("session_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sessions := make([]event.EventSession, len(rows))
	for i, m := range rows {
		sessions[i] = event.EventSession{
			ID:                 event.SessionID(m.SessionID),
			EventID:            event.EventID(m.EventID),
			SessionDate:        event.DateOnly(m.SessionDate),
			StartTime:          m.StartTime,
			EndTime:            m.EndTime,
			IsCancelled:        m.IsCancelled,
			CancellationReason: m.CancellationReason,
		}
	}
	return sessions, nil
}

func (r *eventRepository) DeleteSessions(ctx context.Context, eventID event.EventID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", string(eventID)).
		Delete(&models.EventSessionGORM{}).Error
}

func (r *eventRepository) domainToModel(evt *event.Event) *models.EventGORM {
	model := &models.EventGORM{
		EventID:                string(evt.ID),
		Name:                   evt.Name,
		Description:            evt.Description,
		Type:                   string(evt.Type),
		Status:                 string(evt.Status),
		StartDate:              event.DateOnly(evt.StartDate),
		EndDate:                event.DateOnly(evt.EndDate),
		StartTime:              evt.StartTime,
		EndTime:                evt.EndTime,
		SessionDurationMinutes: evt.SessionDurationMinutes,
		IsRecurring:            evt.IsRecurring,
		IsPublic:               evt.IsPublic,
		MaxParticipants:        evt.MaxParticipants,
		OrganizerType:          string(evt.Organizer.Type),
		OrganizerUserID:        evt.Organizer.UserID,
		OrganizerDivisionID:    evt.Organizer.DivisionID,
		OrganizerClubID:        evt.Organizer.ClubID,
		OrganizerExternal:      evt.Organizer.ExternalName,
		CreatedBy:              evt.CreatedBy,
		CreatedAt:              evt.CreatedAt,
		UpdatedAt:              evt.UpdatedAt,
	}
	if evt.Recurrence != nil {
		start := event.DateOnly(evt.Recurrence.StartDate)
		end := event.DateOnly(evt.Recurrence.EndDate)
		model.RecurrencePattern = string(evt.Recurrence.Pattern)
		model.RecurrenceInterval = evt.Recurrence.Interval
		model.RecurrenceStartDate = &start
		model.RecurrenceEndDate = &end
		model.RecurrenceDays = event.FormatWeekdays(evt.Recurrence.Days)
	}
	return model
}

func (r *eventRepository) modelToDomain(m *models.EventGORM) (*event.Event, error) {
	evt := &event.Event{
		ID:                     event.EventID(m.EventID),
		Name:                   m.Name,
		Description:            m.Description,
		Type:                   event.EventType(m.Type),
		Status:                 event.EventStatus(m.Status),
		StartDate:              event.DateOnly(m.StartDate),
		EndDate:                event.DateOnly(m.EndDate),
		StartTime:              m.StartTime,
		EndTime:                m.EndTime,
		SessionDurationMinutes: m.SessionDurationMinutes,
		IsRecurring:            m.IsRecurring,
		IsPublic:               m.IsPublic,
		MaxParticipants:        m.MaxParticipants,
		Organizer: event.Organizer{
			Type:         event.OrganizerType(m.OrganizerType),
			UserID:       m.OrganizerUserID,
			DivisionID:   m.OrganizerDivisionID,
			ClubID:       m.OrganizerClubID,
			ExternalName: m.OrganizerExternal,
		},
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.IsRecurring {
		days, err := event.ParseWeekdays(m.RecurrenceDays)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", m.EventID, err)
		}
		rec := &event.Recurrence{
			Pattern:  event.RecurrencePattern(m.RecurrencePattern),
			Interval: m.RecurrenceInterval,
			Days:     days,
		}
		if m.RecurrenceStartDate != nil {
			rec.StartDate = event.DateOnly(*m.RecurrenceStartDate)
		}
		if m.RecurrenceEndDate != nil {
			rec.EndDate = event.DateOnly(*m.RecurrenceEndDate)
		}
		evt.Recurrence = rec
	}
	return evt, nil
}

func (r *eventRepository) modelsToDomain(rows []models.EventGORM) ([]event.Event, error) {
	events := make([]event.Event, 0, len(rows))
	for i := range rows {
		evt, err := r.modelToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, *evt)
	}
	return events, nil
}
