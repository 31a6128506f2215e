package domain

import (
	"context"
	"time"
)

// User represents a registered account. The nested documents are stored
// as JSON alongside the identity columns; the password is only ever held
// as a bcrypt hash.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	BirthDetails   BirthDetails
	Preferences    Preferences
	ReadingHistory []ReadingEntry
	Profile        Profile
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BirthDetails holds the optional birth information used for astrological
// readings. All fields are free-form except the date.
type BirthDetails struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Place    string `json:"place,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Preferences holds notification and interest settings.
type Preferences struct {
	NotificationFrequency string   `json:"notificationFrequency,omitempty"`
	Interests             []string `json:"interests,omitempty"`
}

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ValidFrequency reports whether f is an accepted notification frequency.
func ValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// ValidInterest reports whether tag is an accepted interest tag.
func ValidInterest(tag string) bool {
	switch tag {
	case "astrology", "philosophy", "meditation", "spirituality":
		return true
	}
	return false
}

// ReadingEntry is one item of a user's reading history.
type ReadingEntry struct {
	Date         time.Time `json:"date"`
	QuestionType string    `json:"questionType,omitempty"`
	Question     string    `json:"question,omitempty"`
	Answer       string    `json:"answer,omitempty"`
	Feedback     *Feedback `json:"feedback,omitempty"`
}

// Feedback is optional user feedback on a reading.
type Feedback struct {
	Helpful  bool   `json:"helpful"`
	Comments string `json:"comments,omitempty"`
}

// Profile holds the optional public profile fields.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update persists the mutable fields (password hash, birth details,
	// preferences, reading history, profile). Identity fields are fixed.
	Update(ctx context.Context, user *User) error
}
