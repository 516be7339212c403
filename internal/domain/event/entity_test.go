package event

import (
	"errors"
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func validTestEvent() *Event {
	return &Event{
		ID:        EventID("evt-1"),
		Name:      "Общее собрание",
		Type:      EventTypeSingle,
		Status:    EventStatusDraft,
		StartDate: date(2025, time.December, 1),
		EndDate:   date(2025, time.December, 1),
		StartTime: "10:00",
		EndTime:   "12:00",
		Organizer: Organizer{Type: OrganizerClub, ClubID: "club-1"},
		CreatedBy: "user-1",
	}
}

func TestOrganizerValidate(t *testing.T) {
	cases := []struct {
		name    string
		org     Organizer
		wantErr bool
	}{
		{"user ok", Organizer{Type: OrganizerUser, UserID: "u1"}, false},
		{"division ok", Organizer{Type: OrganizerDivision, DivisionID: "d1"}, false},
		{"club ok", Organizer{Type: OrganizerClub, ClubID: "c1"}, false},
		{"external ok", Organizer{Type: OrganizerExternal, ExternalName: "ACME"}, false},
		{"no reference", Organizer{Type: OrganizerDivision}, true},
		{"two references", Organizer{Type: OrganizerUser, UserID: "u1", ClubID: "c1"}, true},
		{"mismatched reference", Organizer{Type: OrganizerUser, ClubID: "c1"}, true},
		{"unknown type", Organizer{Type: "TEAM", UserID: "u1"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.org.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidEventData) {
				t.Fatalf("error does not match ErrInvalidEventData: %v", err)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Event)
		field  string
	}{
		{"empty name", func(e *Event) { e.Name = "" }, "name"},
		{"unknown type", func(e *Event) { e.Type = "MEETUP" }, "eventType"},
		{"unknown status", func(e *Event) { e.Status = "HIDDEN" }, "status"},
		{"end before start", func(e *Event) {
			e.Type = EventTypeCourse
			e.StartDate = date(2025, time.December, 5)
			e.EndDate = date(2025, time.December, 1)
		}, "endDate"},
		{"single spans days", func(e *Event) { e.EndDate = date(2025, time.December, 2) }, "endDate"},
		{"bad start time", func(e *Event) { e.StartTime = "25:00" }, "startTime"},
		{"start not before end", func(e *Event) { e.StartTime = "12:00"; e.EndTime = "12:00" }, "startTime"},
		{"zero max participants", func(e *Event) { e.MaxParticipants = intPtr(0) }, "maxParticipants"},
		{"recurring without fields", func(e *Event) { e.IsRecurring = true }, "recurrence"},
		{"recurring zero interval", func(e *Event) {
			e.IsRecurring = true
			e.Recurrence = &Recurrence{
				Pattern:   RecurrenceDaily,
				Interval:  0,
				StartDate: date(2025, time.December, 1),
				EndDate:   date(2025, time.December, 31),
			}
		}, "recurrenceInterval"},
		{"weekly without days", func(e *Event) {
			e.IsRecurring = true
			e.Recurrence = &Recurrence{
				Pattern:   RecurrenceWeekly,
				Interval:  1,
				StartDate: date(2025, time.December, 1),
				EndDate:   date(2025, time.December, 31),
			}
		}, "recurrenceDays"},
		{"recurrence on non-recurring", func(e *Event) {
			e.Recurrence = &Recurrence{Pattern: RecurrenceDaily, Interval: 1}
		}, "recurrence"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evt := validTestEvent()
			tc.mutate(evt)

			err := validateEvent(evt)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidEventData) {
				t.Fatalf("error does not match ErrInvalidEventData: %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestValidateEventAccepts(t *testing.T) {
	evt := validTestEvent()
	if err := validateEvent(evt); err != nil {
		t.Fatalf("valid single event rejected: %v", err)
	}

	evt = validTestEvent()
	evt.Type = EventTypeRecurring
	evt.EndDate = date(2025, time.December, 31)
	evt.IsRecurring = true
	evt.MaxParticipants = intPtr(30)
	evt.Recurrence = &Recurrence{
		Pattern:   RecurrenceWeekly,
		Interval:  2,
		StartDate: date(2025, time.December, 1),
		EndDate:   date(2025, time.December, 31),
		Days:      []time.Weekday{time.Monday},
	}
	if err := validateEvent(evt); err != nil {
		t.Fatalf("valid recurring event rejected: %v", err)
	}
}
