package ports

import (
	"context"

	"github.com/campuslink/association-api/internal/core/domain"
)

// UpdateUserInput carries the mutable fields of a user record. Nil/empty
// fields are left unchanged; a non-empty Roles set replaces the current
// one after validation.
type UpdateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	City        string
	PhoneNumber string
	Avatar      string
	Roles       []string
}

// UserService exposes the user directory operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListPresidents(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
