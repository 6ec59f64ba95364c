package activity

import (
	"testing"
	"time"
)

// TestEntry_Validate tests the feed entry invariants.
func TestEntry_Validate(t *testing.T) {
	valid := Entry{
		ID:           "a1",
		CoachID:      "coach-001",
		Action:       ActionCreate,
		ResourceType: ResourcePlayer,
		ResourceID:   "pl1",
		Summary:      "player added: Jane Doe",
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid entry, got %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Entry)
	}{
		{"missing coach", func(e *Entry) { e.CoachID = "" }},
		{"missing action", func(e *Entry) { e.Action = "" }},
		{"zero timestamp", func(e *Entry) { e.CreatedAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)
			if err := e.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
