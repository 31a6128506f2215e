package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spiritually/spiritually/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime is how long an issued bearer token stays valid.
const tokenLifetime = 24 * time.Hour

// AuthService handles user registration, login, profile management, and
// JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account after validating inputs. The email
// is lowercase-normalized before storage.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Preferences:  domain.Preferences{NotificationFrequency: domain.FrequencyWeekly},
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token together
// with the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}

	return token, user, nil
}

// ValidateToken parses and validates a bearer token string. Returns the
// user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ProfilePatch carries the updatable sub-documents of a user. Nil fields
// are left untouched; identity and password fields are not patchable
// through this path.
type ProfilePatch struct {
	Profile      *domain.Profile
	Preferences  *domain.Preferences
	BirthDetails *domain.BirthDetails
}

// UpdateProfile applies a patch to the caller's own profile and
// preferences and returns the updated user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Preferences != nil {
		if err := validatePreferences(patch.Preferences); err != nil {
			return nil, err
		}
		prefs := *patch.Preferences
		if prefs.NotificationFrequency == "" {
			prefs.NotificationFrequency = domain.FrequencyWeekly
		}
		user.Preferences = prefs
	}
	if patch.Profile != nil {
		user.Profile = *patch.Profile
	}
	if patch.BirthDetails != nil {
		user.BirthDetails = *patch.BirthDetails
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a fresh hash of
// the new one. This is the only path that recomputes the password hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, updated string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrUnauthorized
	}
	if len(updated) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// RecordReading appends an entry to the user's reading history.
func (s *AuthService) RecordReading(ctx context.Context, userID int64, entry domain.ReadingEntry) error {
	if entry.Question == "" && entry.Answer == "" {
		return fmt.Errorf("%w: a reading needs a question or an answer", domain.ErrInvalidInput)
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.ReadingHistory = append(user.ReadingHistory, entry)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Readings returns the user's reading history, oldest first.
func (s *AuthService) Readings(ctx context.Context, userID int64) ([]domain.ReadingEntry, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ReadingHistory == nil {
		return []domain.ReadingEntry{}, nil
	}
	return user.ReadingHistory, nil
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePreferences(prefs *domain.Preferences) error {
	if prefs.NotificationFrequency != "" && !domain.ValidFrequency(prefs.NotificationFrequency) {
		return fmt.Errorf("%w: notification frequency must be daily, weekly, or monthly", domain.ErrInvalidInput)
	}
	for _, tag := range prefs.Interests {
		if !domain.ValidInterest(tag) {
			return fmt.Errorf("%w: unknown interest %q", domain.ErrInvalidInput, tag)
		}
	}
	return nil
}
