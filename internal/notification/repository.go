// internal/notification/repository.go

package notification

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
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnauthorized         = errors.New("notification belongs to another user")
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListForReceiver(ctx context.Context, receiverID primitive.ObjectID, limit, offset int) ([]*Notification, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Notification, error)
	CountForReceiver(ctx context.Context, receiverID primitive.ObjectID, unreadOnly bool) (int64, error)
	MarkAsRead(ctx context.Context, id, receiverID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, receiverID primitive.ObjectID) error
	DeleteByPair(ctx context.Context, senderID, receiverID primitive.ObjectID, notifType NotificationType) (int64, error)

	// GetSenders resolves sender summaries for populating list responses
	GetSenders(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*NotificationSender, error)

	// GetReceiverContact resolves the receiver's email and mobile for
	// outbound channel delivery
	GetReceiverContact(ctx context.Context, id primitive.ObjectID) (*ReceiverContact, error)
}

type mongoRepository struct {
	notifications *mongo.Collection
	users         *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		notifications: db.Collection("notifications"),
		users:         db.Collection("users"),
	}
}

func (r *mongoRepository) Create(ctx context.Context, n *Notification) error {
	result, err := r.notifications.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

func (r *mongoRepository) ListForReceiver(ctx context.Context, receiverID primitive.ObjectID, limit, offset int) ([]*Notification, error) {
	return r.list(ctx, bson.M{"receiverId": receiverID}, limit, offset)
}

func (r *mongoRepository) ListAll(ctx context.Context, limit, offset int) ([]*Notification, error) {
	return r.list(ctx, bson.M{}, limit, offset)
}

func (r *mongoRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.notifications.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []*Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoRepository) CountForReceiver(ctx context.Context, receiverID primitive.ObjectID, unreadOnly bool) (int64, error) {
	filter := bson.M{"receiverId": receiverID}
	if unreadOnly {
		filter["isRead"] = false
	}
	return r.notifications.CountDocuments(ctx, filter)
}

func (r *mongoRepository) MarkAsRead(ctx context.Context, id, receiverID primitive.ObjectID) error {
	result, err := r.notifications.UpdateOne(ctx,
		bson.M{"_id": id, "receiverId": receiverID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish missing from foreign so callers can 403 vs 404
		count, cerr := r.notifications.CountDocuments(ctx, bson.M{"_id": id})
		if cerr == nil && count > 0 {
			return ErrUnauthorized
		}
		return ErrNotificationNotFound
	}
	return nil
}

func (r *mongoRepository) MarkAllAsRead(ctx context.Context, receiverID primitive.ObjectID) error {
	_, err := r.notifications.UpdateMany(ctx,
		bson.M{"receiverId": receiverID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *mongoRepository) DeleteByPair(ctx context.Context, senderID, receiverID primitive.ObjectID, notifType NotificationType) (int64, error) {
	result, err := r.notifications.DeleteMany(ctx, bson.M{
		"senderId":   senderID,
		"receiverId": receiverID,
		"type":       notifType,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoRepository) GetSenders(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*NotificationSender, error) {
	senders := make(map[primitive.ObjectID]*NotificationSender, len(ids))
	if len(ids) == 0 {
		return senders, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query senders: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user struct {
			ID           primitive.ObjectID `bson:"_id"`
			Name         string             `bson:"name"`
			MemberID     string             `bson:"memberid"`
			ProfilePhoto string             `bson:"profilePhoto"`
		}
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode sender: %w", err)
		}
		senders[user.ID] = &NotificationSender{
			ID:       user.ID.Hex(),
			Name:     user.Name,
			MemberID: user.MemberID,
			Photo:    user.ProfilePhoto,
		}
	}
	return senders, cursor.Err()
}

func (r *mongoRepository) GetReceiverContact(ctx context.Context, id primitive.ObjectID) (*ReceiverContact, error) {
	var user struct {
		Email  string `bson:"email"`
		Mobile string `bson:"mobile"`
	}
	opts := options.FindOne().SetProjection(bson.M{"email": 1, "mobile": 1})
	err := r.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to fetch receiver contact: %w", err)
	}
	return &ReceiverContact{Email: user.Email, Mobile: user.Mobile}, nil
}
