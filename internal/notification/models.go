// internal/notification/models.go

package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType labels what triggered a notification
type NotificationType string

const (
	TypeLike     NotificationType = "like"
	TypeMessage  NotificationType = "message"
	TypeInterest NotificationType = "interest"
)

// Notification is one in-app notification document. Receiver owns it;
// sender is the profile that triggered it.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiver_id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"sender_id"`
	Type       NotificationType   `bson:"type" json:"type"`
	Message    string             `bson:"message" json:"message"`
	IsRead     bool               `bson:"isRead" json:"is_read"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}

// NotificationSender is the populated sender summary attached to a
// notification in list responses.
type NotificationSender struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MemberID string `json:"memberid,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

// ReceiverContact carries the delivery targets for outbound channels
type ReceiverContact struct {
	Email  string
	Mobile string
}

// NotificationView is a notification with its sender populated
type NotificationView struct {
	Notification
	Sender *NotificationSender `json:"sender,omitempty"`
}

// NotificationsResponse is the paginated list payload
type NotificationsResponse struct {
	Notifications []*NotificationView `json:"notifications"`
	TotalCount    int64               `json:"total_count"`
	UnreadCount   int64               `json:"unread_count"`
}
