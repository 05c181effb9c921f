package models

import (
	"strings"

	"github.com/dmitrijs2005/docmind/internal/timex"
)

// User is the authenticated account. The client never edits the
// server-authoritative fields; it only replaces the whole record.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	CreatedAt   timex.Time `json:"created_at"`
	UpdatedAt   timex.Time `json:"updated_at"`
}

// DisplayName prefers the full name and falls back to the email local part.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MinPasswordLength mirrors the backend's registration rule.
const MinPasswordLength = 8
