package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
	"github.com/spiritually/spiritually/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4)
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "ada", "Ada@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "secret1" || strings.Contains(user.PasswordHash, "secret1") {
		t.Fatal("password must not be stored in plaintext")
	}
	if user.Preferences.NotificationFrequency != domain.FrequencyWeekly {
		t.Fatalf("expected weekly default frequency, got %q", user.Preferences.NotificationFrequency)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@b.com", "secret1"},
		{"malformed email", "ada", "not-an-email", "secret1"},
		{"short password", "ada", "a@b.com", "pw"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.username, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "first", "dup@example.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// A different username does not rescue a duplicate email.
	_, err := auth.Register(ctx, "second", "dup@example.com", "secret2")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "same", "one@example.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "same", "two@example.com", "secret2")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "ada", "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := auth.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Username != "ada" {
		t.Fatalf("expected user ada, got %q", user.Username)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %d from token, got %d", user.ID, userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "ada", "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := auth.Login(ctx, "ada@example.com", "wrongpw")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth := newTestAuthService(t)

	_, _, err := auth.Login(context.Background(), "ghost@example.com", "secret1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	auth := newTestAuthService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("ValidateToken(%q): expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := service.NewAuthService(db.Users(), "issuer-secret-number-one-padding", 4)
	verifier := service.NewAuthService(db.Users(), "verifier-secret-number-two-padding", 4)
	ctx := context.Background()

	if _, err := issuer.Register(ctx, "ada", "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := issuer.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := verifier.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign signature, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := auth.UpdateProfile(ctx, user.ID, service.ProfilePatch{
		Profile: &domain.Profile{Bio: "hi"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Profile.Bio != "hi" {
		t.Fatalf("expected bio to be set, got %+v", updated.Profile)
	}
	// Untouched sub-documents survive.
	if updated.Preferences.NotificationFrequency != domain.FrequencyWeekly {
		t.Fatalf("preferences clobbered: %+v", updated.Preferences)
	}

	got, err := auth.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Profile.Bio != "hi" {
		t.Fatal("profile update not persisted")
	}
	if got.Email != "ada@example.com" || got.Username != "ada" {
		t.Fatal("identity fields must not change on profile update")
	}
}

func TestAuthService_UpdateProfile_InvalidPreferences(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.UpdateProfile(ctx, user.ID, service.ProfilePatch{
		Preferences: &domain.Preferences{NotificationFrequency: "hourly"},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad frequency, got %v", err)
	}

	_, err = auth.UpdateProfile(ctx, user.ID, service.ProfilePatch{
		Preferences: &domain.Preferences{Interests: []string{"gardening"}},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad interest, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := auth.ChangePassword(ctx, user.ID, "wrong", "newsecret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong current password, got %v", err)
	}
	if err := auth.ChangePassword(ctx, user.ID, "secret1", "short"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weak new password, got %v", err)
	}

	if err := auth.ChangePassword(ctx, user.ID, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := auth.Login(ctx, "ada@example.com", "secret1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("old password should stop working, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAuthService_Readings(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	readings, err := auth.Readings(ctx, user.ID)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(readings))
	}

	if err := auth.RecordReading(ctx, user.ID, domain.ReadingEntry{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty entry, got %v", err)
	}

	entry := domain.ReadingEntry{
		QuestionType: "guidance",
		Question:     "What should I focus on?",
		Answer:       "The present moment.",
	}
	if err := auth.RecordReading(ctx, user.ID, entry); err != nil {
		t.Fatalf("RecordReading: %v", err)
	}

	readings, err = auth.Readings(ctx, user.ID)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(readings))
	}
	if readings[0].Question != entry.Question || readings[0].Date.IsZero() {
		t.Fatalf("entry not recorded faithfully: %+v", readings[0])
	}
}
