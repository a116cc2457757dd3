// internal/profile/repository.go

package profile

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

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Profile, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, excludeID primitive.ObjectID, filters *ListFilters) ([]*Profile, error)
	ListAdmins(ctx context.Context) ([]*Profile, error)
	SetProfilePhoto(ctx context.Context, id primitive.ObjectID, url string) error

	// Gallery
	GetGallery(ctx context.Context, userID primitive.ObjectID) (*Gallery, error)
	AddGalleryPhoto(ctx context.Context, userID primitive.ObjectID, photo GalleryPhoto) (*Gallery, error)
	RemoveGalleryPhoto(ctx context.Context, userID primitive.ObjectID, url string) (bool, error)
	DeleteGallery(ctx context.Context, userID primitive.ObjectID) error
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

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	var profile Profile
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Profile, error) {
	updates["updatedAt"] = time.Now()

	var profile Profile
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context, excludeID primitive.ObjectID, filters *ListFilters) ([]*Profile, error) {
	filter := bson.M{
		"_id":      bson.M{"$ne": excludeID},
		"isActive": true,
		"userType": UserTypeOrdinary,
	}
	if filters != nil {
		if filters.Age > 0 {
			filter["age"] = filters.Age
		}
		if filters.Location != "" {
			filter["location"] = bson.M{"$regex": filters.Location, "$options": "i"}
		}
		if filters.Religion != "" {
			filter["religion"] = bson.M{"$regex": filters.Religion, "$options": "i"}
		}
		if filters.Caste != "" {
			filter["caste"] = bson.M{"$regex": filters.Caste, "$options": "i"}
		}
	}
	return r.findProfiles(ctx, filter)
}

func (r *mongoRepository) ListAdmins(ctx context.Context) ([]*Profile, error) {
	return r.findProfiles(ctx, bson.M{"userType": UserTypeAdmin})
}

func (r *mongoRepository) findProfiles(ctx context.Context, filter bson.M) ([]*Profile, error) {
	cursor, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []*Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *mongoRepository) SetProfilePhoto(ctx context.Context, id primitive.ObjectID, url string) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profilePhoto": url, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set profile photo: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoRepository) GetGallery(ctx context.Context, userID primitive.ObjectID) (*Gallery, error) {
	var gallery Gallery
	err := r.galleries.FindOne(ctx, bson.M{"userId": userID}).Decode(&gallery)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &Gallery{UserID: userID, Photos: []GalleryPhoto{}}, nil
		}
		return nil, fmt.Errorf("failed to fetch gallery: %w", err)
	}
	return &gallery, nil
}

func (r *mongoRepository) AddGalleryPhoto(ctx context.Context, userID primitive.ObjectID, photo GalleryPhoto) (*Gallery, error) {
	var gallery Gallery
	err := r.galleries.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$push":        bson.M{"photos": photo},
			"$setOnInsert": bson.M{"userId": userID, "uploadedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&gallery)
	if err != nil {
		return nil, fmt.Errorf("failed to add gallery photo: %w", err)
	}
	return &gallery, nil
}

func (r *mongoRepository) RemoveGalleryPhoto(ctx context.Context, userID primitive.ObjectID, url string) (bool, error) {
	result, err := r.galleries.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"photos": bson.M{"url": url}}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove gallery photo: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoRepository) DeleteGallery(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.galleries.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	return nil
}
