// internal/interest/repository.go

package interest

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrInterestNotFound  = errors.New("interest not found")
	ErrDuplicateInterest = errors.New("interest already sent")
	ErrDuplicateWish     = errors.New("profile already in wishlist")
)

type Repository interface {
	// Interests
	CreateInterest(ctx context.Context, interest *Interest) error
	FindInterest(ctx context.Context, id primitive.ObjectID) (*Interest, error)
	ListSent(ctx context.Context, senderID primitive.ObjectID) ([]*Interest, error)
	ListReceived(ctx context.Context, receiverID primitive.ObjectID) ([]*Interest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error

	// Wishlist
	CreateWish(ctx context.Context, entry *WishlistEntry) error
	ListWishes(ctx context.Context, userID primitive.ObjectID) ([]*WishlistEntry, error)
	DeleteWish(ctx context.Context, userID, wishedUserID primitive.ObjectID) (bool, error)

	// Profile summaries for populated listings
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*ProfileSummary, error)
}

type mongoRepository struct {
	interests *mongo.Collection
	wishlists *mongo.Collection
	users     *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		interests: db.Collection("interests"),
		wishlists: db.Collection("wishlists"),
		users:     db.Collection("users"),
	}
}

func (r *mongoRepository) CreateInterest(ctx context.Context, interest *Interest) error {
	result, err := r.interests.InsertOne(ctx, interest)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateInterest
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		interest.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindInterest(ctx context.Context, id primitive.ObjectID) (*Interest, error) {
	var interest Interest
	err := r.interests.FindOne(ctx, bson.M{"_id": id}).Decode(&interest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInterestNotFound
		}
		return nil, fmt.Errorf("failed to fetch interest: %w", err)
	}
	return &interest, nil
}

func (r *mongoRepository) ListSent(ctx context.Context, senderID primitive.ObjectID) ([]*Interest, error) {
	return r.listInterests(ctx, bson.M{"senderId": senderID})
}

func (r *mongoRepository) ListReceived(ctx context.Context, receiverID primitive.ObjectID) ([]*Interest, error) {
	return r.listInterests(ctx, bson.M{"receiverId": receiverID})
}

func (r *mongoRepository) listInterests(ctx context.Context, filter bson.M) ([]*Interest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	cursor, err := r.interests.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer cursor.Close(ctx)

	interests := []*Interest{}
	if err := cursor.All(ctx, &interests); err != nil {
		return nil, fmt.Errorf("failed to decode interests: %w", err)
	}
	return interests, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.interests.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update interest: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrInterestNotFound
	}
	return nil
}

func (r *mongoRepository) CreateWish(ctx context.Context, entry *WishlistEntry) error {
	result, err := r.wishlists.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateWish
		}
		return fmt.Errorf("failed to create wishlist entry: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

func (r *mongoRepository) ListWishes(ctx context.Context, userID primitive.ObjectID) ([]*WishlistEntry, error) {
	cursor, err := r.wishlists.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*WishlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}
	return entries, nil
}

func (r *mongoRepository) DeleteWish(ctx context.Context, userID, wishedUserID primitive.ObjectID) (bool, error) {
	result, err := r.wishlists.DeleteOne(ctx, bson.M{"userId": userID, "wishedUserId": wishedUserID})
	if err != nil {
		return false, fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *mongoRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*ProfileSummary, error) {
	summaries := make(map[primitive.ObjectID]*ProfileSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user struct {
			ID       primitive.ObjectID `bson:"_id"`
			Name     string             `bson:"name"`
			MemberID string             `bson:"memberid"`
			Age      int                `bson:"age"`
			Location string             `bson:"location"`
			Religion string             `bson:"religion"`
			Caste    string             `bson:"caste"`
		}
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		summaries[user.ID] = &ProfileSummary{
			ID:       user.ID.Hex(),
			Name:     user.Name,
			MemberID: user.MemberID,
			Age:      user.Age,
			Location: user.Location,
			Religion: user.Religion,
			Caste:    user.Caste,
		}
	}
	return summaries, cursor.Err()
}
