package observation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validObservation() Observation {
	return Observation{
		ID:              "o1",
		PlayerID:        "pl1",
		CoachID:         "c1",
		Content:         "Reads the game well, needs work on aerial duels",
		ObservationDate: fixedTime,
		CreatedAt:       fixedTime,
	}
}

// TestValidate tests field validation.
func TestValidate(t *testing.T) {
	o := validObservation()
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Observation)
		wantErr error
	}{
		{"missing player", func(o *Observation) { o.PlayerID = "" }, ErrEmptyPlayerID},
		{"missing coach", func(o *Observation) { o.CoachID = "" }, ErrEmptyCoachID},
		{"missing content", func(o *Observation) { o.Content = "" }, ErrEmptyContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validObservation()
			tt.mutate(&o)
			if err := o.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidate_ContentLength tests the content bound.
func TestValidate_ContentLength(t *testing.T) {
	o := validObservation()
	o.Content = strings.Repeat("x", MaxContentLength+1)
	if err := o.Validate(); err == nil {
		t.Error("expected error for over-long content")
	}
}

// TestValidate_MissingDates tests the timestamp requirements.
func TestValidate_MissingDates(t *testing.T) {
	o := validObservation()
	o.ObservationDate = time.Time{}
	if err := o.Validate(); err == nil {
		t.Error("expected error for missing observation date")
	}

	o = validObservation()
	o.CreatedAt = time.Time{}
	if err := o.Validate(); err == nil {
		t.Error("expected error for missing created_at")
	}
}
