package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spiritually/spiritually/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite. The
// profile, preferences, birth details, and reading history sub-documents
// are stored as JSON columns.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	docs, err := marshalUserDocs(user)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, birth_details, preferences, reading_history, profile, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash,
		docs.birthDetails, docs.preferences, docs.readingHistory, docs.profile,
		now, now,
	)
	if err != nil {
		if dup := duplicateUserError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "email = ?", email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	var birthDetails, preferences, readingHistory, profile string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, birth_details, preferences, reading_history, profile, created_at, updated_at
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&birthDetails, &preferences, &readingHistory, &profile,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if err := json.Unmarshal([]byte(birthDetails), &user.BirthDetails); err != nil {
		return nil, fmt.Errorf("decode birth details: %w", err)
	}
	if err := json.Unmarshal([]byte(preferences), &user.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(readingHistory), &user.ReadingHistory); err != nil {
		return nil, fmt.Errorf("decode reading history: %w", err)
	}
	if err := json.Unmarshal([]byte(profile), &user.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	docs, err := marshalUserDocs(user)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = ?, birth_details = ?, preferences = ?, reading_history = ?, profile = ?, updated_at = ?
		 WHERE id = ?`,
		user.PasswordHash, docs.birthDetails, docs.preferences, docs.readingHistory, docs.profile,
		now, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	user.UpdatedAt = now
	return nil
}

type userDocs struct {
	birthDetails   string
	preferences    string
	readingHistory string
	profile        string
}

func marshalUserDocs(user *domain.User) (userDocs, error) {
	birthDetails, err := json.Marshal(user.BirthDetails)
	if err != nil {
		return userDocs{}, fmt.Errorf("encode birth details: %w", err)
	}
	preferences, err := json.Marshal(user.Preferences)
	if err != nil {
		return userDocs{}, fmt.Errorf("encode preferences: %w", err)
	}
	history := user.ReadingHistory
	if history == nil {
		history = []domain.ReadingEntry{}
	}
	readingHistory, err := json.Marshal(history)
	if err != nil {
		return userDocs{}, fmt.Errorf("encode reading history: %w", err)
	}
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return userDocs{}, fmt.Errorf("encode profile: %w", err)
	}
	return userDocs{
		birthDetails:   string(birthDetails),
		preferences:    string(preferences),
		readingHistory: string(readingHistory),
		profile:        string(profile),
	}, nil
}

// duplicateUserError maps a SQLite unique constraint violation on the
// users table to the matching domain error, or returns nil for other
// errors.
func duplicateUserError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	if strings.Contains(msg, "users.email") {
		return domain.ErrDuplicateEmail
	}
	if strings.Contains(msg, "users.username") {
		return domain.ErrDuplicateUsername
	}
	return nil
}
