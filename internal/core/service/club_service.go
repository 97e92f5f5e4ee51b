package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/association-api/internal/api/metrics"
	"github.com/campuslink/association-api/internal/core/domain"
	"github.com/campuslink/association-api/internal/core/ports"
)

const defaultActivityLimit = 50

// ClubService implements club CRUD and the membership manager.
type ClubService struct {
	repo     ports.ClubRepository
	activity ports.ActivityRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

// NewClubService builds a ClubService. recorder may be nil, in which
// case membership activity is not recorded.
func NewClubService(repo ports.ClubRepository, activity ports.ActivityRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *ClubService {
	return &ClubService{repo: repo, activity: activity, recorder: recorder, log: log}
}

func (s *ClubService) Create(ctx context.Context, input ports.CreateClubInput) (*domain.Club, error) {
	clubType := domain.ClubType(input.Type)
	if clubType != domain.TypeAssociation {
		clubType = domain.TypeClub
	}

	now := time.Now().UTC()
	club := &domain.Club{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Email:       input.Email,
		PresidentID: input.PresidentID,
		Members:     []string{},
		Logo:        input.Logo,
		Type:        clubType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, club)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("club_id", created.ID).Str("name", created.Name).Msg("club created")
	return created, nil
}

func (s *ClubService) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClubService) List(ctx context.Context) ([]*domain.Club, error) {
	return s.repo.List(ctx)
}

// Update applies non-empty fields. Members are deliberately untouched:
// the membership set is only ever mutated through Join and Leave.
func (s *ClubService) Update(ctx context.Context, id string, input ports.UpdateClubInput) (*domain.Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		club.Description = input.Description
	}
	if input.Category != "" {
		club.Category = input.Category
	}
	if input.Email != "" {
		club.Email = input.Email
	}
	if input.PresidentID != "" {
		club.PresidentID = input.PresidentID
	}
	if input.Logo != "" {
		club.Logo = input.Logo
	}

	return s.repo.Update(ctx, club)
}

func (s *ClubService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("club_id", id).Msg("club deleted")
	return nil
}

// Join adds the user to the club's member set. The repository performs
// the membership test and the insert as one conditional update, so two
// racing joins for the same pair resolve to exactly one fresh addition;
// the loser observes ErrAlreadyMember.
func (s *ClubService) Join(ctx context.Context, clubID, userID string) (*domain.Club, error) {
	club, err := s.repo.AddMember(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			metrics.MembershipOpsTotal.WithLabelValues("join", "conflict").Inc()
		}
		return nil, err
	}

	metrics.MembershipOpsTotal.WithLabelValues("join", "ok").Inc()
	s.recordActivity(clubID, userID, domain.ActionJoined)
	s.log.Info().Str("club_id", clubID).Str("user_id", userID).Msg("member joined")
	return club, nil
}

// Leave removes the user from the member set, failing explicitly when
// the user is not currently a member.
func (s *ClubService) Leave(ctx context.Context, clubID, userID string) (*domain.Club, error) {
	club, err := s.repo.RemoveMember(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			metrics.MembershipOpsTotal.WithLabelValues("leave", "conflict").Inc()
		}
		return nil, err
	}

	metrics.MembershipOpsTotal.WithLabelValues("leave", "ok").Inc()
	s.recordActivity(clubID, userID, domain.ActionLeft)
	s.log.Info().Str("club_id", clubID).Str("user_id", userID).Msg("member left")
	return club, nil
}

func (s *ClubService) RecentActivity(ctx context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error) {
	if _, err := s.repo.FindByID(ctx, clubID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}
	return s.activity.FindByClub(ctx, clubID, limit)
}

func (s *ClubService) recordActivity(clubID, userID string, action domain.ActivityAction) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.MembershipActivity{
		ClubID:     clubID,
		UserID:     userID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	})
}
