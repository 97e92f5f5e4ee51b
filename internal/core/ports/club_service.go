package ports

import (
	"context"

	"github.com/campuslink/association-api/internal/core/domain"
)

// CreateClubInput carries all data needed to create a club.
type CreateClubInput struct {
	Name        string
	Description string
	Category    string
	Email       string
	PresidentID string
	Type        string
	Logo        string
}

// UpdateClubInput carries the mutable club fields; empty values are
// left unchanged. Membership is never mutated through Update.
type UpdateClubInput struct {
	Description string
	Category    string
	Email       string
	PresidentID string
	Logo        string
}

// ClubService exposes club CRUD and the membership manager.
type ClubService interface {
	Create(ctx context.Context, input CreateClubInput) (*domain.Club, error)
	GetByID(ctx context.Context, id string) (*domain.Club, error)
	List(ctx context.Context) ([]*domain.Club, error)
	Update(ctx context.Context, id string, input UpdateClubInput) (*domain.Club, error)
	Delete(ctx context.Context, id string) error

	// Join adds the user to the club's member set. A repeat call for the
	// same pair fails with ErrAlreadyMember rather than silently
	// succeeding, so callers can distinguish first-join from replay.
	Join(ctx context.Context, clubID, userID string) (*domain.Club, error)
	// Leave removes the user from the member set, failing with
	// ErrNotMember when the user is not currently a member.
	Leave(ctx context.Context, clubID, userID string) (*domain.Club, error)

	// RecentActivity returns the newest membership activity entries for
	// a club, newest first.
	RecentActivity(ctx context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error)
}
