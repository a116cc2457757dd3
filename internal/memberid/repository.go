// internal/memberid/repository.go

package memberid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrProfileNotFound is returned when no profile matches the given ID
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateMemberID is returned when the store rejects an ID on
	// the unique index. Callers retry with a fresh suffix.
	ErrDuplicateMemberID = errors.New("member ID already taken")

	// ErrAlreadyAssigned is returned by the conditional update when the
	// profile gained a member ID between read and write.
	ErrAlreadyAssigned = errors.New("profile already has a member ID")
)

// MemberProfile is the slice of a profile document this package reads
type MemberProfile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Mobile    string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	MemberID  string             `bson:"memberid,omitempty" json:"memberid,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

type Repository interface {
	FindByID(ctx context.Context, userID string) (*MemberProfile, error)
	SetMemberIDIfAbsent(ctx context.Context, userID, memberID string) error
	FindWithoutMemberID(ctx context.Context, skip, limit int64) ([]*MemberProfile, error)
	CountWithoutMemberID(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountWithMemberID(ctx context.Context) (int64, error)
	RecentWithMemberID(ctx context.Context, limit int64) ([]*MemberProfile, error)
}

// missingMemberID matches documents without an allocated member ID in
// any of the three shapes legacy data left behind.
var missingMemberID = bson.M{"$or": bson.A{
	bson.M{"memberid": bson.M{"$exists": false}},
	bson.M{"memberid": nil},
	bson.M{"memberid": ""},
}}

type mongoRepository struct {
	users *mongo.Collection
}

// NewRepository creates a member ID repository over the users collection
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{users: db.Collection("users")}
}

func (r *mongoRepository) FindByID(ctx context.Context, userID string) (*MemberProfile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	var profile MemberProfile
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// SetMemberIDIfAbsent performs the atomic set-if-absent write: the
// filter only matches while the profile still lacks a member ID, so two
// concurrent backfills cannot both win.
func (r *mongoRepository) SetMemberIDIfAbsent(ctx context.Context, userID, memberID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrProfileNotFound
	}

	filter := bson.M{"_id": oid, "$or": missingMemberID["$or"]}
	result, err := r.users.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"memberid": memberID}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateMemberID
		}
		return fmt.Errorf("failed to set member ID: %w", err)
	}

	if result.MatchedCount == 0 {
		// Either the profile is gone or another writer got there first
		count, err := r.users.CountDocuments(ctx, bson.M{"_id": oid})
		if err == nil && count == 0 {
			return ErrProfileNotFound
		}
		return ErrAlreadyAssigned
	}
	return nil
}

func (r *mongoRepository) FindWithoutMemberID(ctx context.Context, skip, limit int64) ([]*MemberProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.users.Find(ctx, missingMemberID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles without member ID: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*MemberProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *mongoRepository) CountWithoutMemberID(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, missingMemberID)
}

func (r *mongoRepository) CountAll(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{})
}

func (r *mongoRepository) CountWithMemberID(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{"memberid": bson.M{"$exists": true, "$nin": bson.A{nil, ""}}})
}

func (r *mongoRepository) RecentWithMemberID(ctx context.Context, limit int64) ([]*MemberProfile, error) {
	filter := bson.M{"memberid": bson.M{"$exists": true, "$nin": bson.A{nil, ""}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"name": 1, "email": 1, "memberid": 1, "createdAt": 1})

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent members: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*MemberProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode recent members: %w", err)
	}
	return profiles, nil
}
