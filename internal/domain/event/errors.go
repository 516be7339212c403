package event

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidEventData  = errors.New("invalid event data")
	ErrScheduleConflict  = errors.New("schedule conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrEventNotAvailable = errors.New("event is not available for registration")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
	ErrAlreadyCancelled  = errors.New("registration is already cancelled")
)

// ValidationError - нарушение структурного инварианта с указанием поля.
// errors.Is(err, ErrInvalidEventData) работает для любого ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event data: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEventData
}

// ConflictError - отказ по пересечению расписания; несёт конфликтующие события.
type ConflictError struct {
	Conflicts []Event
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("schedule conflict with event %s", e.Conflicts[0].ID)
	}
	return fmt.Sprintf("schedule conflict with %d events", len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}
