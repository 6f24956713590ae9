package models

import (
	"strings"
	"time"
)

// User is a local account created from an OAuth profile. It has no password:
// such accounts only ever authenticate through an OAuth provider.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Username         string    `gorm:"not null;size:150" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	FirstName        string    `gorm:"size:150" json:"first_name"`
	LastName         string    `gorm:"size:150" json:"last_name"`
	RefreshTokenHash string    `gorm:"size:100" json:"-"`
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
