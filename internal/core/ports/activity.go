package ports

import (
	"context"

	"github.com/campuslink/association-api/internal/core/domain"
)

// ActivityRepository persists membership activity entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.MembershipActivity) error
	// FindByClub returns up to limit entries for the club, newest first.
	FindByClub(ctx context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error)
}

// ActivityRecorder accepts activity entries for asynchronous recording.
// Implementations must preserve ordering of entries for a single club.
type ActivityRecorder interface {
	Record(entry domain.MembershipActivity)
}
