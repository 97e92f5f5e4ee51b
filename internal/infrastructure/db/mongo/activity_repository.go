package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/association-api/internal/core/domain"
)

const activityCollection = "club_activity"

// ActivityRepository persists the club membership audit feed.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	ClubID     string `bson:"club_id"`
	UserID     string `bson:"user_id"`
	Action     string `bson:"action"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.MembershipActivity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		ClubID:     entry.ClubID,
		UserID:     entry.UserID,
		Action:     string(entry.Action),
		OccurredAt: entry.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) FindByClub(ctx context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.MembershipActivity
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, &domain.MembershipActivity{
			ClubID:     ma.ClubID,
			UserID:     ma.UserID,
			Action:     domain.ActivityAction(ma.Action),
			OccurredAt: time.Unix(ma.OccurredAt, 0).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

// EnsureIndexes creates the compound feed index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "occurred_at", Value: -1}},
	})
	return err
}
