package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/identity"
)

var (
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 30 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyExternalID  = errors.New("external ID cannot be empty")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is the profile behind an authenticated identity. ExternalID is the
// subject issued by the identity provider.
type User struct {
	ID          uuid.UUID
	ExternalID  string
	Email       string
	Username    string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewUser(externalID, email, username string) (*User, error) {
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	return &User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Email:      email,
		Username:   username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Identity is the value the rest of the system uses to refer to this user.
func (u *User) Identity() identity.UserID {
	return identity.UserID(u.ID.String())
}

func (u *User) SetDisplayName(displayName string) {
	if displayName == "" {
		return
	}
	u.DisplayName = displayName
	u.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
}

// Identity providers do not always share an email, so empty is allowed.
func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 30 {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
