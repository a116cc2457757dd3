// internal/matching/repository.go

package matching

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	// Profile reads
	GetProfile(ctx context.Context, id primitive.ObjectID) (*MatchProfile, error)
	GetOrdinaryProfile(ctx context.Context, id primitive.ObjectID) (*MatchProfile, error)

	// Like set mutations. RemoveLike reports whether a like was
	// actually present.
	AddLike(ctx context.Context, viewerID, targetID primitive.ObjectID) error
	RemoveLike(ctx context.Context, viewerID, targetID primitive.ObjectID) (bool, error)

	// Pools
	FindCandidates(ctx context.Context, viewerID primitive.ObjectID, excludeGender string) ([]*MatchProfile, error)
	FindMutualMatches(ctx context.Context, viewer *MatchProfile) ([]*MatchProfile, error)
	SearchProfiles(ctx context.Context, filters *SearchFilters) ([]*MatchProfile, error)

	// Gallery read for the visibility gate
	GetGalleryPhotos(ctx context.Context, userID primitive.ObjectID) ([]GalleryPhoto, error)
}

type mongoRepository struct {
	users     *mongo.Collection
	galleries *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		users:     db.Collection("users"),
		galleries: db.Collection("galleries"),
	}
}

func (r *mongoRepository) GetProfile(ctx context.Context, id primitive.ObjectID) (*MatchProfile, error) {
	var profile MatchProfile
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

func (r *mongoRepository) GetOrdinaryProfile(ctx context.Context, id primitive.ObjectID) (*MatchProfile, error) {
	var profile MatchProfile
	err := r.users.FindOne(ctx, bson.M{"_id": id, "userType": UserTypeOrdinary}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

func (r *mongoRepository) AddLike(ctx context.Context, viewerID, targetID primitive.ObjectID) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": viewerID},
		bson.M{"$addToSet": bson.M{"likes": targetID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoRepository) RemoveLike(ctx context.Context, viewerID, targetID primitive.ObjectID) (bool, error) {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": viewerID},
		bson.M{"$pull": bson.M{"likes": targetID}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	if result.MatchedCount == 0 {
		return false, ErrProfileNotFound
	}
	return result.ModifiedCount > 0, nil
}

// FindCandidates returns the recommendation pool: active ordinary
// profiles excluding the viewer and the viewer's own gender.
func (r *mongoRepository) FindCandidates(ctx context.Context, viewerID primitive.ObjectID, excludeGender string) ([]*MatchProfile, error) {
	filter := bson.M{
		"_id":      bson.M{"$ne": viewerID},
		"gender":   bson.M{"$ne": excludeGender},
		"userType": UserTypeOrdinary,
		"isActive": true,
	}
	return r.findProfiles(ctx, filter)
}

// FindMutualMatches returns profiles the viewer has liked that have
// liked the viewer back.
func (r *mongoRepository) FindMutualMatches(ctx context.Context, viewer *MatchProfile) ([]*MatchProfile, error) {
	if len(viewer.Likes) == 0 {
		return []*MatchProfile{}, nil
	}
	filter := bson.M{
		"_id":      bson.M{"$in": viewer.Likes},
		"likes":    viewer.ID,
		"userType": UserTypeOrdinary,
	}
	return r.findProfiles(ctx, filter)
}

func (r *mongoRepository) SearchProfiles(ctx context.Context, filters *SearchFilters) ([]*MatchProfile, error) {
	filter := bson.M{"userType": UserTypeOrdinary, "isActive": true}
	if filters.MaxAge > 0 {
		filter["age"] = bson.M{"$lte": filters.MaxAge}
	}
	if filters.Location != "" {
		filter["location"] = bson.M{"$regex": filters.Location, "$options": "i"}
	}
	if filters.Religion != "" {
		filter["religion"] = filters.Religion
	}
	if filters.Caste != "" {
		filter["caste"] = filters.Caste
	}
	return r.findProfiles(ctx, filter)
}

func (r *mongoRepository) findProfiles(ctx context.Context, filter bson.M) ([]*MatchProfile, error) {
	cursor, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []*MatchProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *mongoRepository) GetGalleryPhotos(ctx context.Context, userID primitive.ObjectID) ([]GalleryPhoto, error) {
	var gallery struct {
		Photos []GalleryPhoto `bson:"photos"`
	}
	err := r.galleries.FindOne(ctx, bson.M{"userId": userID}).Decode(&gallery)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []GalleryPhoto{}, nil
		}
		return nil, fmt.Errorf("failed to fetch gallery: %w", err)
	}
	return gallery.Photos, nil
}
