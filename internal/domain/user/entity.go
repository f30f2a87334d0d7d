package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/turtacn/LexConnect/pkg/errors"
)

// Role distinguishes what a user may do in the application.
type Role string

const (
	RoleClient Role = "client"
	RoleLawyer Role = "lawyer"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleLawyer, RoleAdmin:
		return true
	}
	return false
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy without the password hash, safe to send to clients.
func (u *User) Public() *User {
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// NormalizeEmail trims and lowercases an address; emails are unique on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the fields supplied at registration.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.InvalidParam("name is required")
	}
	if u.Email == "" {
		return errors.InvalidParam("email is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.InvalidParam("email is malformed").WithDetail(u.Email)
	}
	if u.Role != "" && !u.Role.Valid() {
		return errors.InvalidParam("unknown role").WithDetail(string(u.Role))
	}
	return nil
}

//Personal.AI order the ending
