package postgres

import (
	"context"
	"errors"

	"clubhub/internal/domain/event"
	"clubhub/internal/models"

	"gorm.io/gorm"
)

type attendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) event.AttendeeRepository {
	return &attendeeRepository{db: db}
}

func (r *attendeeRepository) GetByEventAndUser(ctx context.Context, eventID event.EventID, userID string) (*event.EventAttendee, error) {
	var model models.EventAttendeeGORM
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", string(eventID), userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToDomain(&model), nil
}

func (r *attendeeRepository) ListByEvent(ctx context.Context, eventID event.EventID) ([]event.EventAttendee, error) {
	var rows []models.EventAttendeeGORM
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", string(eventID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	attendees := make([]event.EventAttendee, len(rows))
	for i := range rows {
		attendees[i] = *r.modelToDomain(&rows[i])
	}
	return attendees, nil
}

func (r *attendeeRepository) CountRegistered(ctx context.Context, eventID event.EventID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EventAttendeeGORM{}).
		Where("event_id = ? AND status = ?", string(eventID), string(event.AttendeeStatusRegistered)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *attendeeRepository) Save(ctx context.Context, att *event.EventAttendee) error {
	model := &models.EventAttendeeGORM{
		AttendeeID: string(att.ID),
		EventID:    string(att.EventID),
		UserID:     att.UserID,
		Status:     string(att.Status),
		CreatedAt:  att.CreatedAt,
		UpdatedAt:  att.UpdatedAt,
	}

	var existing models.EventAttendeeGORM
	err := r.db.WithContext(ctx).
		Where("attendee_id = ?", string(att.ID)).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.db.WithContext(ctx).Create(model).Error
	}

	model.ID = existing.ID
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *attendeeRepository) DeleteByEvent(ctx context.Context, eventID event.EventID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", string(eventID)).
		Delete(&models.EventAttendeeGORM{}).Error
}

func (r *attendeeRepository) modelToDomain(m *models.EventAttendeeGORM) *event.EventAttendee {
	return &event.EventAttendee{
		ID:        event.AttendeeID(m.AttendeeID),
		EventID:   event.EventID(m.EventID),
		UserID:    m.UserID,
		Status:    event.AttendeeStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
