package coach

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestRole_Derivation tests that role follows the IsAdmin flag.
func TestRole_Derivation(t *testing.T) {
	c := Coach{Email: "head@example.club"}
	if c.Role() != RoleCoach {
		t.Errorf("expected coach, got %s", c.Role())
	}
	c.IsAdmin = true
	if c.Role() != RoleAdmin {
		t.Errorf("expected admin, got %s", c.Role())
	}
}

// TestValidate tests email validation.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid", "head@example.club", nil},
		{"empty", "", ErrEmptyEmail},
		{"whitespace", "   ", ErrEmptyEmail},
		{"no at sign", "headexample.club", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Coach{Email: tt.email}
			err := c.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidate_LongEmail tests the length bound.
func TestValidate_LongEmail(t *testing.T) {
	c := Coach{Email: strings.Repeat("a", 250) + "@x.nz"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for over-long email")
	}
}

// TestSetPassword tests hashing and the length floor.
func TestSetPassword(t *testing.T) {
	var c Coach
	if err := c.SetPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := c.SetPassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}

	if err := c.SetPassword("a-long-enough-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if c.PasswordHash == "" || c.PasswordHash == "a-long-enough-password" {
		t.Error("expected bcrypt hash, not plaintext")
	}

	if err := c.CheckPassword("a-long-enough-password"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := c.CheckPassword("wrong-password-here"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestCheckPassword_NoHash tests that an unset hash never verifies.
func TestCheckPassword_NoHash(t *testing.T) {
	var c Coach
	if err := c.CheckPassword(""); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestLockout tests the failed-login counter and lock window.
func TestLockout(t *testing.T) {
	var c Coach
	for i := 0; i < 4; i++ {
		c.RecordFailedLogin()
	}
	if c.IsLocked() {
		t.Error("expected unlocked at 4 failures")
	}
	c.RecordFailedLogin()
	if !c.IsLocked() {
		t.Error("expected locked at 5 failures")
	}

	c.ResetFailedLogins()
	if c.IsLocked() {
		t.Error("expected unlocked after reset")
	}
	if c.FailedLogins != 0 {
		t.Errorf("expected counter cleared, got %d", c.FailedLogins)
	}
}

// TestIsLocked_Expiry tests that an elapsed lock no longer blocks.
func TestIsLocked_Expiry(t *testing.T) {
	c := Coach{LockedUntil: time.Now().Add(-time.Minute)}
	if c.IsLocked() {
		t.Error("expected expired lock to be ignored")
	}
}

// TestDisplayName tests name assembly.
func TestDisplayName(t *testing.T) {
	c := Coach{FirstName: "Alex", LastName: "Reid"}
	if c.DisplayName() != "Alex Reid" {
		t.Errorf("got %q", c.DisplayName())
	}
	solo := Coach{FirstName: "Alex"}
	if solo.DisplayName() != "Alex" {
		t.Errorf("got %q", solo.DisplayName())
	}
}
