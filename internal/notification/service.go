// internal/notification/service.go

package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultPageSize = 20

type Service interface {
	// NotifyLike records and pushes the like side-effect. Failures are
	// logged, never surfaced: a like must not fail on its notification.
	NotifyLike(ctx context.Context, senderID, senderName, receiverID string)

	// DeleteLikeNotifications removes the like notifications for a
	// sender/receiver pair and reports how many were deleted.
	DeleteLikeNotifications(ctx context.Context, senderID, receiverID string) (int64, error)

	GetNotifications(ctx context.Context, receiverID string, limit, offset int) (*NotificationsResponse, error)
	GetAllNotifications(ctx context.Context, limit, offset int) ([]*NotificationView, error)
	MarkAsRead(ctx context.Context, notificationID, receiverID string) error
	MarkAllAsRead(ctx context.Context, receiverID string) error
}

// Channels are the optional outbound deliveries mirrored alongside the
// in-app notification. A nil Channels disables mirroring.
type Channels struct {
	Email        EmailService
	SMS          SMSService
	EmailEnabled bool
	SMSEnabled   bool
}

type service struct {
	repo     Repository
	hub      *Hub
	channels *Channels
}

func NewService(repo Repository, hub *Hub, channels *Channels) Service {
	return &service{repo: repo, hub: hub, channels: channels}
}

func (s *service) NotifyLike(ctx context.Context, senderID, senderName, receiverID string) {
	senderOID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		log.Printf("Invalid like notification sender id %q: %v", senderID, err)
		return
	}
	receiverOID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		log.Printf("Invalid like notification receiver id %q: %v", receiverID, err)
		return
	}

	n := &Notification{
		ReceiverID: receiverOID,
		SenderID:   senderOID,
		Type:       TypeLike,
		Message:    fmt.Sprintf("%s liked your profile.", senderName),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("Failed to store like notification %s -> %s: %v", senderID, receiverID, err)
		recordNotification(string(TypeLike), "failed")
		return
	}
	recordNotification(string(TypeLike), "stored")

	if s.hub != nil {
		s.hub.Push(receiverID, "notification", n)
	}
	s.mirror(ctx, n)
}

// mirror delivers the notification over the enabled outbound channels.
// Delivery failures are logged; the in-app notification already stands.
func (s *service) mirror(ctx context.Context, n *Notification) {
	if s.channels == nil || (!s.channels.EmailEnabled && !s.channels.SMSEnabled) {
		return
	}

	contact, err := s.repo.GetReceiverContact(ctx, n.ReceiverID)
	if err != nil {
		log.Printf("Failed to resolve contact for %s: %v", n.ReceiverID.Hex(), err)
		return
	}

	if s.channels.EmailEnabled && s.channels.Email != nil && contact.Email != "" {
		if err := s.channels.Email.SendEmail(ctx, contact.Email, "You have a new notification", n.Message); err != nil {
			log.Printf("Email notification to %s failed: %v", contact.Email, err)
		}
	}
	if s.channels.SMSEnabled && s.channels.SMS != nil && contact.Mobile != "" {
		if err := s.channels.SMS.SendSMS(ctx, contact.Mobile, n.Message); err != nil {
			log.Printf("SMS notification to %s failed: %v", contact.Mobile, err)
		}
	}
}

func (s *service) DeleteLikeNotifications(ctx context.Context, senderID, receiverID string) (int64, error) {
	senderOID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return 0, fmt.Errorf("invalid sender id: %w", err)
	}
	receiverOID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return 0, fmt.Errorf("invalid receiver id: %w", err)
	}
	return s.repo.DeleteByPair(ctx, senderOID, receiverOID, TypeLike)
}

func (s *service) GetNotifications(ctx context.Context, receiverID string, limit, offset int) (*NotificationsResponse, error) {
	receiverOID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, fmt.Errorf("invalid receiver id: %w", err)
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	notifications, err := s.repo.ListForReceiver(ctx, receiverOID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountForReceiver(ctx, receiverOID, false)
	if err != nil {
		total = int64(len(notifications))
	}
	unread, err := s.repo.CountForReceiver(ctx, receiverOID, true)
	if err != nil {
		unread = 0
	}

	views, err := s.populateSenders(ctx, notifications)
	if err != nil {
		return nil, err
	}

	return &NotificationsResponse{
		Notifications: views,
		TotalCount:    total,
		UnreadCount:   unread,
	}, nil
}

func (s *service) GetAllNotifications(ctx context.Context, limit, offset int) ([]*NotificationView, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	notifications, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.populateSenders(ctx, notifications)
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, receiverID string) error {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}
	receiverOID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return fmt.Errorf("invalid receiver id: %w", err)
	}
	return s.repo.MarkAsRead(ctx, id, receiverOID)
}

func (s *service) MarkAllAsRead(ctx context.Context, receiverID string) error {
	receiverOID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return fmt.Errorf("invalid receiver id: %w", err)
	}
	return s.repo.MarkAllAsRead(ctx, receiverOID)
}

func (s *service) populateSenders(ctx context.Context, notifications []*Notification) ([]*NotificationView, error) {
	senderIDs := make([]primitive.ObjectID, 0, len(notifications))
	seen := make(map[primitive.ObjectID]bool, len(notifications))
	for _, n := range notifications {
		if !seen[n.SenderID] {
			seen[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
	}

	senders, err := s.repo.GetSenders(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = &NotificationView{
			Notification: *n,
			Sender:       senders[n.SenderID],
		}
	}
	return views, nil
}
