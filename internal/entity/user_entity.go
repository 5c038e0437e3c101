package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser UserRole = "user"

	// Pending until the emailed link is followed.
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is a journaling account. PasswordHash is nil for accounts that
// never set a password.
type User struct {
	Id              uuid.UUID
	Email           string
	PasswordHash    *string
	FullName        string
	Role            UserRole
	Status          UserStatus
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FirstName is the first word of FullName, or "" when it is blank.
func (u *User) FirstName() string {
	if u == nil {
		return ""
	}
	parts := strings.Fields(u.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

type EmailVerificationToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// UserRefreshToken stores only the SHA-256 of the issued token.
type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}

func (t *UserRefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
