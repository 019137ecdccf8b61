package model

import (
	"errors"
	"strings"
	"time"
)

// User is a registered reporter.
type User struct {
	ID             string    `json:"id"`
	Prename        string    `json:"prename"`
	Surname        string    `json:"surname"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Contact is the part of a user shown next to their reports.
type Contact struct {
	Email   string `json:"email"`
	Prename string `json:"prename"`
	Surname string `json:"surname"`
}

// Contact returns the user's public contact details.
func (u *User) Contact() Contact {
	return Contact{Email: u.Email, Prename: u.Prename, Surname: u.Surname}
}

// NormalizeEmail returns the canonical form of an email address. Addresses
// are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks password strength rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
