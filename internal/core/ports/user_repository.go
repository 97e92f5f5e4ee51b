package ports

import (
	"context"

	"github.com/campuslink/association-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
// Create must enforce email uniqueness atomically (unique index), not
// by a separate existence check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListPresidents returns users holding the admin or president role.
	ListPresidents(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
