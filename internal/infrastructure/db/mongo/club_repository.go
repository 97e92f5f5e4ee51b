package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/association-api/internal/core/domain"
)

const clubsCollection = "clubs"

type ClubRepository struct {
	coll *mongo.Collection
}

func NewClubRepository(db *mongo.Database) *ClubRepository {
	return &ClubRepository{coll: db.Collection(clubsCollection)}
}

type mongoClub struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Email       string             `bson:"email"`
	PresidentID string             `bson:"president_id,omitempty"`
	Members     []string           `bson:"members"`
	Logo        string             `bson:"logo,omitempty"`
	Type        string             `bson:"type"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func toMongoClub(c *domain.Club) mongoClub {
	members := c.Members
	if members == nil {
		members = []string{}
	}
	return mongoClub{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Email:       c.Email,
		PresidentID: c.PresidentID,
		Members:     members,
		Logo:        c.Logo,
		Type:        string(c.Type),
		CreatedAt:   c.CreatedAt.Unix(),
		UpdatedAt:   c.UpdatedAt.Unix(),
	}
}

func (mc *mongoClub) toDomain() *domain.Club {
	members := mc.Members
	if members == nil {
		members = []string{}
	}
	return &domain.Club{
		ID:          mc.ID.Hex(),
		Name:        mc.Name,
		Description: mc.Description,
		Category:    mc.Category,
		Email:       mc.Email,
		PresidentID: mc.PresidentID,
		Members:     members,
		Logo:        mc.Logo,
		Type:        domain.ClubType(mc.Type),
		CreatedAt:   unixToTime(mc.CreatedAt),
		UpdatedAt:   unixToTime(mc.UpdatedAt),
	}
}

func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoClub(club))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClubExists
		}
		return nil, fmt.Errorf("insert club: %w", err)
	}

	created := *club
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id string) (*domain.Club, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClub
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("find club: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClubRepository) List(ctx context.Context) ([]*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer cur.Close(ctx)

	var clubs []*domain.Club
	for cur.Next(ctx) {
		var mc mongoClub
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode club: %w", err)
		}
		clubs = append(clubs, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate clubs: %w", err)
	}
	return clubs, nil
}

// Update rewrites the club's descriptive fields. The members array is
// excluded from the $set document: membership is only mutated through
// AddMember and RemoveMember.
func (r *ClubRepository) Update(ctx context.Context, club *domain.Club) (*domain.Club, error) {
	oid, err := primitive.ObjectIDFromHex(club.ID)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"description":  club.Description,
		"category":     club.Category,
		"email":        club.Email,
		"president_id": club.PresidentID,
		"logo":         club.Logo,
		"updated_at":   time.Now().UTC().Unix(),
	}}

	var mc mongoClub
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("update club: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClubNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClubNotFound
	}
	return nil
}

// AddMember performs the membership test and insert as one conditional
// update: the filter only matches when the user is absent from members,
// and $addToSet inserts them. Two racing joins for the same pair can
// therefore never both match — the loser falls through to the
// disambiguation read and observes ErrAlreadyMember.
func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID string) (*domain.Club, error) {
	oid, err := primitive.ObjectIDFromHex(clubID)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "members": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
	}

	var mc mongoClub
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mc)
	if err == nil {
		return mc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add member: %w", err)
	}

	// No match: either the club is gone or the user is already in.
	if _, findErr := r.FindByID(ctx, clubID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrAlreadyMember
}

// RemoveMember is the inverse conditional update: the filter matches
// only when the user is present, and $pull removes them.
func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID string) (*domain.Club, error) {
	oid, err := primitive.ObjectIDFromHex(clubID)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "members": userID}
	update := bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC().Unix()},
	}

	var mc mongoClub
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mc)
	if err == nil {
		return mc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("remove member: %w", err)
	}

	if _, findErr := r.FindByID(ctx, clubID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrNotMember
}

// EnsureIndexes creates the unique club name index.
func (r *ClubRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
