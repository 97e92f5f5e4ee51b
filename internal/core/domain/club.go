package domain

import "time"

// ClubType distinguishes a club from a broader association.
type ClubType string

const (
	TypeClub        ClubType = "club"
	TypeAssociation ClubType = "association"
)

// Club is an organization with a membership set. A given user id
// appears at most once in Members; the president need not be a member.
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Email       string    `json:"email"`
	PresidentID string    `json:"president_id,omitempty"`
	Members     []string  `json:"members"`
	Logo        string    `json:"logo,omitempty"`
	Type        ClubType  `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsMember reports whether the user id is in the membership set.
func (c *Club) IsMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// ActivityAction labels a membership mutation in the activity feed.
type ActivityAction string

const (
	ActionJoined ActivityAction = "joined"
	ActionLeft   ActivityAction = "left"
)

// MembershipActivity is one audit entry for a club's membership feed.
type MembershipActivity struct {
	ClubID     string         `json:"club_id"`
	UserID     string         `json:"user_id"`
	Action     ActivityAction `json:"action"`
	OccurredAt time.Time      `json:"occurred_at"`
}
