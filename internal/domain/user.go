// Package domain contains the core data types for the TravelXplore site.
// It is imported by every other internal package (form, repo, service, handler)
// and depends on nothing but the standard library and decimal.
package domain

import (
	"strings"
	"time"
)

// User is an account that can sign in. Staff and superusers are created with
// the manage CLI; registration always produces a regular user.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time // nil until the first successful login
}

// FullName joins first and last name, trimming whichever is missing.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the full name when one is set, otherwise the username.
func (u User) DisplayName() string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.Username
}

// IsAdmin reports whether u may manage the destination catalog.
func IsAdmin(u User) bool {
	return u.IsStaff || u.IsSuperuser
}

// Profile holds the per-user details that do not belong on the account row.
// Exactly one profile exists per user once it has been fetched or saved.
type Profile struct {
	ID          int64
	UserID      int64
	Phone       string
	Address     string
	Picture     string     // path relative to the media root; empty when unset
	DateOfBirth *time.Time // date only
}
