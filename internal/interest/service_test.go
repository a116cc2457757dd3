// internal/interest/service_test.go

package interest

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	interests map[primitive.ObjectID]*Interest
	wishes    map[primitive.ObjectID]*WishlistEntry
	summaries map[primitive.ObjectID]*ProfileSummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		interests: make(map[primitive.ObjectID]*Interest),
		wishes:    make(map[primitive.ObjectID]*WishlistEntry),
		summaries: make(map[primitive.ObjectID]*ProfileSummary),
	}
}

func (f *fakeRepo) CreateInterest(_ context.Context, interest *Interest) error {
	for _, existing := range f.interests {
		if existing.SenderID == interest.SenderID && existing.ReceiverID == interest.ReceiverID {
			return ErrDuplicateInterest
		}
	}
	interest.ID = primitive.NewObjectID()
	f.interests[interest.ID] = interest
	return nil
}

func (f *fakeRepo) FindInterest(_ context.Context, id primitive.ObjectID) (*Interest, error) {
	interest, ok := f.interests[id]
	if !ok {
		return nil, ErrInterestNotFound
	}
	copied := *interest
	return &copied, nil
}

func (f *fakeRepo) ListSent(_ context.Context, senderID primitive.ObjectID) ([]*Interest, error) {
	var out []*Interest
	for _, interest := range f.interests {
		if interest.SenderID == senderID {
			out = append(out, interest)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReceived(_ context.Context, receiverID primitive.ObjectID) ([]*Interest, error) {
	var out []*Interest
	for _, interest := range f.interests {
		if interest.ReceiverID == receiverID {
			out = append(out, interest)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	interest, ok := f.interests[id]
	if !ok {
		return ErrInterestNotFound
	}
	interest.Status = status
	return nil
}

func (f *fakeRepo) CreateWish(_ context.Context, entry *WishlistEntry) error {
	for _, existing := range f.wishes {
		if existing.UserID == entry.UserID && existing.WishedUserID == entry.WishedUserID {
			return ErrDuplicateWish
		}
	}
	entry.ID = primitive.NewObjectID()
	f.wishes[entry.ID] = entry
	return nil
}

func (f *fakeRepo) ListWishes(_ context.Context, userID primitive.ObjectID) ([]*WishlistEntry, error) {
	var out []*WishlistEntry
	for _, entry := range f.wishes {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteWish(_ context.Context, userID, wishedUserID primitive.ObjectID) (bool, error) {
	for id, entry := range f.wishes {
		if entry.UserID == userID && entry.WishedUserID == wishedUserID {
			delete(f.wishes, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*ProfileSummary, error) {
	out := make(map[primitive.ObjectID]*ProfileSummary, len(ids))
	for _, id := range ids {
		if summary, ok := f.summaries[id]; ok {
			out[id] = summary
		}
	}
	return out, nil
}

type fakeLiker struct {
	calls int
	err   error
}

func (f *fakeLiker) Like(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}

func TestSendInterestRejectsSelf(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLiker{})
	id := primitive.NewObjectID().Hex()

	_, err := svc.SendInterest(context.Background(), id, id)
	if !errors.Is(err, ErrSelfInterest) {
		t.Errorf("got %v, want ErrSelfInterest", err)
	}
}

func TestSendInterestRejectsDuplicate(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLiker{})
	sender := primitive.NewObjectID().Hex()
	receiver := primitive.NewObjectID().Hex()

	if _, err := svc.SendInterest(context.Background(), sender, receiver); err != nil {
		t.Fatalf("first send: %v", err)
	}
	_, err := svc.SendInterest(context.Background(), sender, receiver)
	if !errors.Is(err, ErrDuplicateInterest) {
		t.Errorf("got %v, want ErrDuplicateInterest", err)
	}
}

func TestRespondToInterestEnforcesReceiver(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLiker{})
	sender := primitive.NewObjectID().Hex()
	receiver := primitive.NewObjectID().Hex()

	interest, err := svc.SendInterest(context.Background(), sender, receiver)
	if err != nil {
		t.Fatalf("SendInterest: %v", err)
	}

	// The sender cannot answer their own interest.
	_, err = svc.RespondToInterest(context.Background(), interest.ID.Hex(), sender, true)
	if !errors.Is(err, ErrNotReceiver) {
		t.Errorf("got %v, want ErrNotReceiver", err)
	}

	accepted, err := svc.RespondToInterest(context.Background(), interest.ID.Hex(), receiver, true)
	if err != nil {
		t.Fatalf("RespondToInterest: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Errorf("status = %q, want %q", accepted.Status, StatusAccepted)
	}
}

func TestRespondToInterestOnlyOnce(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLiker{})
	sender := primitive.NewObjectID().Hex()
	receiver := primitive.NewObjectID().Hex()

	interest, err := svc.SendInterest(context.Background(), sender, receiver)
	if err != nil {
		t.Fatalf("SendInterest: %v", err)
	}
	if _, err := svc.RespondToInterest(context.Background(), interest.ID.Hex(), receiver, false); err != nil {
		t.Fatalf("first response: %v", err)
	}

	_, err = svc.RespondToInterest(context.Background(), interest.ID.Hex(), receiver, true)
	if !errors.Is(err, ErrAlreadyClosed) {
		t.Errorf("got %v, want ErrAlreadyClosed", err)
	}
}

func TestGetReceivedInterestsPopulatesSender(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLiker{})
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	repo.summaries[sender] = &ProfileSummary{ID: sender.Hex(), Name: "Arun", MemberID: "PP202401aaaaa"}

	if _, err := svc.SendInterest(context.Background(), sender.Hex(), receiver.Hex()); err != nil {
		t.Fatalf("SendInterest: %v", err)
	}

	views, err := svc.GetReceivedInterests(context.Background(), receiver.Hex())
	if err != nil {
		t.Fatalf("GetReceivedInterests: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d interests, want 1", len(views))
	}
	if views[0].Profile == nil || views[0].Profile.Name != "Arun" {
		t.Errorf("sender profile not populated: %+v", views[0].Profile)
	}
}

func TestAddToWishlistLikesTheProfile(t *testing.T) {
	liker := &fakeLiker{}
	svc := NewService(newFakeRepo(), liker)
	user := primitive.NewObjectID().Hex()
	wished := primitive.NewObjectID().Hex()

	entry, err := svc.AddToWishlist(context.Background(), user, wished)
	if err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if entry.AddedAt.IsZero() || entry.AddedAt.After(time.Now()) {
		t.Errorf("addedAt = %v, want a recent timestamp", entry.AddedAt)
	}
	if liker.calls != 1 {
		t.Errorf("like calls = %d, want 1", liker.calls)
	}
}

func TestAddToWishlistSurvivesLikeFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLiker{err: errors.New("already liked")})
	user := primitive.NewObjectID().Hex()
	wished := primitive.NewObjectID().Hex()

	if _, err := svc.AddToWishlist(context.Background(), user, wished); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if len(repo.wishes) != 1 {
		t.Errorf("got %d wishlist entries, want 1", len(repo.wishes))
	}
}

func TestAddToWishlistRejectsSelf(t *testing.T) {
	liker := &fakeLiker{}
	svc := NewService(newFakeRepo(), liker)
	id := primitive.NewObjectID().Hex()

	_, err := svc.AddToWishlist(context.Background(), id, id)
	if !errors.Is(err, ErrSelfInterest) {
		t.Errorf("got %v, want ErrSelfInterest", err)
	}
	if liker.calls != 0 {
		t.Error("like must not run for rejected wishes")
	}
}

func TestRemoveFromWishlistUnknownEntry(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLiker{})

	err := svc.RemoveFromWishlist(context.Background(),
		primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrInterestNotFound) {
		t.Errorf("got %v, want ErrInterestNotFound", err)
	}
}
