package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrClubExists         = errors.New("club already exists")
	ErrClubNotFound       = errors.New("club not found")
	ErrAlreadyMember      = errors.New("already a member of this club")
	ErrNotMember          = errors.New("not a member of this club")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidRole        = errors.New("invalid role")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)
