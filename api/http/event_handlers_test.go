package http

import (
	"testing"

	"clubhub/internal/domain/event"
)

func strPtr(s string) *string { return &s }

func TestUpdateRequestOrganizerPatch(t *testing.T) {
	req := updateEventRequest{
		OrganizerType:   strPtr("CLUB"),
		OrganizerClubID: strPtr("club-7"),
	}

	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Organizer == nil {
		t.Fatal("organizer patch was dropped")
	}
	if input.Organizer.Type != event.OrganizerClub {
		t.Errorf("expected CLUB, got %s", input.Organizer.Type)
	}
	if input.Organizer.ClubID != "club-7" {
		t.Errorf("expected club-7, got %q", input.Organizer.ClubID)
	}
	if input.Organizer.UserID != "" || input.Organizer.DivisionID != "" || input.Organizer.ExternalName != "" {
		t.Errorf("unrelated organizer refs must stay empty: %+v", *input.Organizer)
	}
}

func TestUpdateRequestWithoutOrganizerLeavesItUntouched(t *testing.T) {
	name := "Новое имя"
	req := updateEventRequest{
		Name: &name,
		// organizer_club_id без organizer_type не образует патч организатора
		OrganizerClubID: strPtr("club-7"),
	}

	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Organizer != nil {
		t.Errorf("organizer must not change without organizer_type, got %+v", *input.Organizer)
	}
	if input.Name == nil || *input.Name != name {
		t.Errorf("name patch lost: %+v", input.Name)
	}
}
