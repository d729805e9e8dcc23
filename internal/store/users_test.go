package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
)

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      SignupInput
		field   string
		message string
	}{
		{"short id", SignupInput{ID: "ab", Email: "a@b.co", Nickname: "nick", Password: "password123"}, "id", "id must be 4-20 alphanumeric characters"},
		{"bad email", SignupInput{ID: "validuser1", Email: "not-an-email", Nickname: "nick", Password: "password123"}, "email", "invalid email format"},
		{"short nickname", SignupInput{ID: "validuser1", Email: "a@b.co", Nickname: "n", Password: "password123"}, "nickname", "nickname must be 2-50 characters"},
		{"short password", SignupInput{ID: "validuser1", Email: "a@b.co", Nickname: "nick", Password: "short"}, "password", "password must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tt.in)
			var verr *util.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field || verr.Message != tt.message {
				t.Errorf("got %s/%q, want %s/%q", verr.Field, verr.Message, tt.field, tt.message)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, SignupInput{ID: "validuser1", Email: "valid@example.com", Nickname: "Valid", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}
	if u.UUID == "" || u.Status != models.UserActive {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Error("password was not hashed")
	}

	body, _ := json.Marshal(u)
	if strings.Contains(string(body), "password") || strings.Contains(string(body), u.PasswordHash) {
		t.Errorf("serialized user leaks the hash: %s", body)
	}

	conflicts := []struct {
		in    SignupInput
		field string
	}{
		{SignupInput{ID: "validuser1", Email: "other@example.com", Nickname: "Other", Password: "password123"}, "id"},
		{SignupInput{ID: "otheruser", Email: "VALID@example.com", Nickname: "Other", Password: "password123"}, "email"},
	}
	for _, c := range conflicts {
		_, err := s.CreateUser(ctx, c.in)
		var cerr *util.ConflictError
		if !errors.As(err, &cerr) || cerr.Field != c.field {
			t.Errorf("err = %v, want conflict on %s", err, c.field)
		}
	}
}

func TestVerifyCredentials(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")

	for _, pw := range []string{"wrong-password", ""} {
		_, err := s.VerifyCredentials(ctx, "alice01", pw)
		if !errors.Is(err, util.ErrUnauthorized) || err.Error() != "id or password mismatch" {
			t.Errorf("password %q: err = %v", pw, err)
		}
	}
	if _, err := s.VerifyCredentials(ctx, "nobody", "password123"); err == nil || err.Error() != "id or password mismatch" {
		t.Errorf("unknown user: err = %v", err)
	}

	before := time.Now().Add(-time.Second)
	u, err := s.VerifyCredentials(ctx, "alice01", "password123")
	if err != nil {
		t.Fatal(err)
	}
	stored, err := s.GetUser(ctx, "alice01")
	if err != nil {
		t.Fatal(err)
	}
	if stored.LastLoginAt == nil || stored.LastLoginAt.Before(before) {
		t.Errorf("last_login_at = %v, want >= %v", stored.LastLoginAt, before)
	}
	if u.LastLoginAt == nil {
		t.Error("returned user has no last_login_at")
	}
}

func TestProfileAndDeactivate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "bob0001")

	nick := "Bobby"
	u, err := s.UpdateProfile(ctx, "bob0001", ProfilePatch{Nickname: &nick})
	if err != nil {
		t.Fatal(err)
	}
	if u.Nickname != "Bobby" {
		t.Errorf("nickname = %q", u.Nickname)
	}

	if err := s.ChangePassword(ctx, "bob0001", "bad-old-pass", "newpassword1"); err == nil {
		t.Error("expected error for a wrong current password")
	}
	if err := s.ChangePassword(ctx, "bob0001", "password123", "newpassword1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.VerifyCredentials(ctx, "bob0001", "newpassword1"); err != nil {
		t.Errorf("login with new password: %v", err)
	}

	sess, err := s.CreateSession(ctx, "bob0001", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeactivateUser(ctx, "bob0001"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetUser(ctx, "bob0001"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("inactive user lookup: err = %v", err)
	}
	if _, err := s.ActiveSession(ctx, sess.ID); !errors.Is(err, util.ErrUnauthorized) {
		t.Errorf("session after deactivation: err = %v", err)
	}
}

func TestSessions(t *testing.T) {
	s := newTestStore(t, fixedClock("2025-03-10T09:00:00Z"))
	ctx := context.Background()
	mustUser(t, s, "carol01")

	sess, err := s.CreateSession(ctx, "carol01", 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC); !sess.ExpiresAt.Equal(want) {
		t.Errorf("expires_at = %v, want %v", sess.ExpiresAt, want)
	}
	if _, err := s.ActiveSession(ctx, sess.ID); err != nil {
		t.Fatalf("active session: %v", err)
	}
	if err := s.RevokeSession(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ActiveSession(ctx, sess.ID); !errors.Is(err, util.ErrUnauthorized) {
		t.Errorf("revoked session: err = %v", err)
	}

	expired, err := s.CreateSession(ctx, "carol01", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ActiveSession(ctx, expired.ID); !errors.Is(err, util.ErrUnauthorized) {
		t.Errorf("expired session: err = %v", err)
	}
}
