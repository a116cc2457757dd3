// internal/auth/repository.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email or mobile already registered")
)

type Repository interface {
	CreateUser(ctx context.Context, user *AuthUser) error
	FindByEmail(ctx context.Context, email string) (*AuthUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*AuthUser, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
}

type mongoRepository struct {
	users *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{users: db.Collection("users")}
}

func (r *mongoRepository) CreateUser(ctx context.Context, user *AuthUser) error {
	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*AuthUser, error) {
	var user AuthUser
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*AuthUser, error) {
	var user AuthUser
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *mongoRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hashedPassword}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
