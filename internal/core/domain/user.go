package domain

import (
	"fmt"
	"slices"
	"time"
)

// Role is a named permission category. The set is closed: anything
// outside the four constants below is rejected at parse time.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStudent   Role = "student"
	RoleClubLead  Role = "club-lead"
	RolePresident Role = "president"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStudent, RoleClubLead, RolePresident:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// ParseRoles validates a whole role set. An empty input yields the
// default set {student} — a user never exists without a role.
func ParseRoles(raw []string) ([]Role, error) {
	if len(raw) == 0 {
		return []Role{RoleStudent}, nil
	}
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

// HasAnyRole reports whether the two role sets intersect.
func HasAnyRole(have, allowed []Role) bool {
	for _, r := range have {
		if slices.Contains(allowed, r) {
			return true
		}
	}
	return false
}

// RoleStrings converts a role set to its wire representation.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// User models a registered person. The password hash never leaves the
// server; profile fields are inert with respect to authorization.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	City         string    `json:"city,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	BirthDate    time.Time `json:"birth_date,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Name returns the display name used in login responses.
func (u *User) Name() string {
	return u.FirstName
}
