// internal/notification/service_test.go

package notification

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	stored   []*Notification
	senders  map[primitive.ObjectID]*NotificationSender
	contacts map[primitive.ObjectID]*ReceiverContact
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	n.ID = primitive.NewObjectID()
	f.stored = append(f.stored, n)
	return nil
}

func (f *fakeRepo) ListForReceiver(_ context.Context, receiverID primitive.ObjectID, limit, offset int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.stored {
		if n.ReceiverID == receiverID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(_ context.Context, limit, offset int) ([]*Notification, error) {
	return f.stored, nil
}

func (f *fakeRepo) CountForReceiver(_ context.Context, receiverID primitive.ObjectID, unreadOnly bool) (int64, error) {
	var count int64
	for _, n := range f.stored {
		if n.ReceiverID != receiverID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeRepo) MarkAsRead(_ context.Context, id, receiverID primitive.ObjectID) error {
	for _, n := range f.stored {
		if n.ID == id {
			if n.ReceiverID != receiverID {
				return ErrUnauthorized
			}
			n.IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (f *fakeRepo) MarkAllAsRead(_ context.Context, receiverID primitive.ObjectID) error {
	for _, n := range f.stored {
		if n.ReceiverID == receiverID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) DeleteByPair(_ context.Context, senderID, receiverID primitive.ObjectID, notifType NotificationType) (int64, error) {
	var kept []*Notification
	var deleted int64
	for _, n := range f.stored {
		if n.SenderID == senderID && n.ReceiverID == receiverID && n.Type == notifType {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.stored = kept
	return deleted, nil
}

func (f *fakeRepo) GetSenders(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*NotificationSender, error) {
	out := make(map[primitive.ObjectID]*NotificationSender)
	for _, id := range ids {
		if s, ok := f.senders[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeRepo) GetReceiverContact(_ context.Context, id primitive.ObjectID) (*ReceiverContact, error) {
	if c, ok := f.contacts[id]; ok {
		return c, nil
	}
	return nil, ErrNotificationNotFound
}

type fakeEmailService struct {
	sent []string
}

func (f *fakeEmailService) SendEmail(_ context.Context, to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMSService struct {
	sent []string
}

func (f *fakeSMSService) SendSMS(_ context.Context, to, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

func TestNotifyLikeStoresOneNotification(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nil)

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	svc.NotifyLike(context.Background(), sender.Hex(), "Priya", receiver.Hex())

	if len(repo.stored) != 1 {
		t.Fatalf("got %d notifications, want 1", len(repo.stored))
	}
	n := repo.stored[0]
	if n.Type != TypeLike {
		t.Errorf("type = %q, want %q", n.Type, TypeLike)
	}
	if n.ReceiverID != receiver || n.SenderID != sender {
		t.Error("notification must target the liked profile and carry the liker")
	}
	if n.IsRead {
		t.Error("new notifications start unread")
	}
	if n.Message != "Priya liked your profile." {
		t.Errorf("unexpected message %q", n.Message)
	}
}

func TestNotifyLikeSwallowsBadIDs(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nil)

	svc.NotifyLike(context.Background(), "not-an-id", "Priya", primitive.NewObjectID().Hex())
	if len(repo.stored) != 0 {
		t.Error("invalid sender id must not store a notification")
	}
}

func TestDeleteLikeNotificationsCountsDeletions(t *testing.T) {
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	other := primitive.NewObjectID()
	repo := &fakeRepo{stored: []*Notification{
		{ID: primitive.NewObjectID(), SenderID: sender, ReceiverID: receiver, Type: TypeLike},
		{ID: primitive.NewObjectID(), SenderID: sender, ReceiverID: receiver, Type: TypeLike},
		{ID: primitive.NewObjectID(), SenderID: sender, ReceiverID: other, Type: TypeLike},
		{ID: primitive.NewObjectID(), SenderID: sender, ReceiverID: receiver, Type: TypeMessage},
	}}
	svc := NewService(repo, nil, nil)

	deleted, err := svc.DeleteLikeNotifications(context.Background(), sender.Hex(), receiver.Hex())
	if err != nil {
		t.Fatalf("DeleteLikeNotifications: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(repo.stored) != 2 {
		t.Errorf("remaining = %d, want 2 (other pair and other type untouched)", len(repo.stored))
	}
}

func TestGetNotificationsPopulatesSenders(t *testing.T) {
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	repo := &fakeRepo{
		stored: []*Notification{
			{ID: primitive.NewObjectID(), SenderID: sender, ReceiverID: receiver, Type: TypeLike},
		},
		senders: map[primitive.ObjectID]*NotificationSender{
			sender: {ID: sender.Hex(), Name: "Priya", MemberID: "PP202401aaaaa"},
		},
	}
	svc := NewService(repo, nil, nil)

	response, err := svc.GetNotifications(context.Background(), receiver.Hex(), 10, 0)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(response.Notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(response.Notifications))
	}
	got := response.Notifications[0].Sender
	if got == nil || got.Name != "Priya" {
		t.Errorf("sender not populated: %+v", got)
	}
	if response.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", response.UnreadCount)
	}
}

func TestNotifyLikeMirrorsToEnabledChannels(t *testing.T) {
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	repo := &fakeRepo{contacts: map[primitive.ObjectID]*ReceiverContact{
		receiver: {Email: "priya@example.com", Mobile: "+911234567890"},
	}}
	emails := &fakeEmailService{}
	sms := &fakeSMSService{}
	svc := NewService(repo, nil, &Channels{
		Email:        emails,
		SMS:          sms,
		EmailEnabled: true,
		SMSEnabled:   false,
	})

	svc.NotifyLike(context.Background(), sender.Hex(), "Arun", receiver.Hex())

	if len(emails.sent) != 1 || emails.sent[0] != "priya@example.com" {
		t.Errorf("email mirror = %v, want one delivery to the receiver", emails.sent)
	}
	if len(sms.sent) != 0 {
		t.Error("disabled SMS channel must not deliver")
	}
}

func TestMarkAsReadEnforcesOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	id := primitive.NewObjectID()
	repo := &fakeRepo{stored: []*Notification{
		{ID: id, SenderID: primitive.NewObjectID(), ReceiverID: owner, Type: TypeLike},
	}}
	svc := NewService(repo, nil, nil)

	if err := svc.MarkAsRead(context.Background(), id.Hex(), stranger.Hex()); err != ErrUnauthorized {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
	if err := svc.MarkAsRead(context.Background(), id.Hex(), owner.Hex()); err != nil {
		t.Errorf("owner mark read failed: %v", err)
	}
	if !repo.stored[0].IsRead {
		t.Error("notification should be read")
	}
}
