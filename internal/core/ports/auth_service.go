package ports

import (
	"context"
	"time"

	"github.com/campuslink/association-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a user account.
// Roles is optional; an empty slice yields the default {student}.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Roles       []string
	City        string
	PhoneNumber string
	BirthDate   time.Time
	Avatar      string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user. Unknown
	// email and wrong password both surface as ErrInvalidCredentials so
	// the response never reveals which factor failed.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
