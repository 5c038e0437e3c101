package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserFirstName(t *testing.T) {
	assert.Equal(t, "Dana", (&User{FullName: "  Dana   Lee "}).FirstName())
	assert.Equal(t, "", (&User{FullName: "   "}).FirstName())

	var missing *User
	assert.Equal(t, "", missing.FirstName())
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()

	assert.True(t, (&UserRefreshToken{ExpiresAt: now.Add(time.Hour)}).Usable(now))
	assert.False(t, (&UserRefreshToken{ExpiresAt: now.Add(time.Hour), Revoked: true}).Usable(now))
	assert.False(t, (&UserRefreshToken{ExpiresAt: now.Add(-time.Second)}).Usable(now))
}

func TestVerificationTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, (&EmailVerificationToken{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&EmailVerificationToken{ExpiresAt: now.Add(-time.Minute)}).Expired(now))
}
