package ports

import (
	"context"

	"github.com/campuslink/association-api/internal/core/domain"
)

// ClubRepository defines persistence operations for clubs.
//
// AddMember and RemoveMember are the only membership mutations and must
// be conditional atomic updates against the store: the membership test
// and the array mutation happen in one round trip, so two racing joins
// for the same (club, user) pair cannot both insert. A read followed by
// an unconditional write is not an acceptable implementation.
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) (*domain.Club, error)
	FindByID(ctx context.Context, id string) (*domain.Club, error)
	List(ctx context.Context) ([]*domain.Club, error)
	Update(ctx context.Context, club *domain.Club) (*domain.Club, error)
	Delete(ctx context.Context, id string) error

	// AddMember inserts userID into the club's member set if absent.
	// Returns ErrAlreadyMember when present, ErrClubNotFound when the
	// club does not exist.
	AddMember(ctx context.Context, clubID, userID string) (*domain.Club, error)
	// RemoveMember removes userID from the club's member set if present.
	// Returns ErrNotMember when absent, ErrClubNotFound when the club
	// does not exist.
	RemoveMember(ctx context.Context, clubID, userID string) (*domain.Club, error)
}
