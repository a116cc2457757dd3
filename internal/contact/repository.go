// internal/contact/repository.go

package contact

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

var ErrMessageNotFound = errors.New("contact message not found")

type Repository interface {
	Create(ctx context.Context, message *Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	List(ctx context.Context, filters *ListFilters) ([]*Message, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	StatsByStatus(ctx context.Context) (*Stats, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("contacts")}
}

func (r *mongoRepository) Create(ctx context.Context, message *Message) error {
	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	var message Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to fetch contact message: %w", err)
	}
	return &message, nil
}

func (r *mongoRepository) List(ctx context.Context, filters *ListFilters) ([]*Message, int64, error) {
	filter := bson.M{}
	if filters != nil && filters.Status != "" {
		filter["status"] = filters.Status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filters != nil && filters.Limit > 0 {
		opts.SetSkip(int64((filters.Page - 1) * filters.Limit))
		opts.SetLimit(int64(filters.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []*Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("failed to decode contact messages: %w", err)
	}
	return messages, total, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Message, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var message Message
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		opts,
	).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}
	return &message, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *mongoRepository) StatsByStatus(ctx context.Context) (*Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate contact stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &Stats{}
	for cursor.Next(ctx) {
		var group struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, fmt.Errorf("failed to decode contact stats: %w", err)
		}
		stats.Total += group.Count
		switch group.Status {
		case StatusNew:
			stats.New = group.Count
		case StatusRead:
			stats.Read = group.Count
		case StatusReplied:
			stats.Replied = group.Count
		}
	}
	return stats, cursor.Err()
}
