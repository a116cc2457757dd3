// internal/interest/service.go

package interest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID     = errors.New("invalid profile id")
	ErrSelfInterest  = errors.New("you cannot send interest to yourself")
	ErrNotReceiver   = errors.New("only the receiver can respond to an interest")
	ErrAlreadyClosed = errors.New("interest already responded to")
)

// Liker mirrors the like flow so adding a profile to the wishlist also
// likes it.
type Liker interface {
	Like(ctx context.Context, viewerID, targetID string) error
}

type Service interface {
	SendInterest(ctx context.Context, senderID, receiverID string) (*Interest, error)
	GetSentInterests(ctx context.Context, senderID string) ([]*InterestView, error)
	GetReceivedInterests(ctx context.Context, receiverID string) ([]*InterestView, error)
	RespondToInterest(ctx context.Context, interestID, responderID string, accept bool) (*Interest, error)

	AddToWishlist(ctx context.Context, userID, wishedUserID string) (*WishlistEntry, error)
	GetWishlist(ctx context.Context, userID string) ([]*WishlistView, error)
	RemoveFromWishlist(ctx context.Context, userID, wishedUserID string) error
}

type service struct {
	repo  Repository
	liker Liker
}

func NewService(repo Repository, liker Liker) Service {
	return &service{repo: repo, liker: liker}
}

func (s *service) SendInterest(ctx context.Context, senderID, receiverID string) (*Interest, error) {
	senderOID, receiverOID, err := parsePair(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if senderOID == receiverOID {
		return nil, ErrSelfInterest
	}

	interest := &Interest{
		SenderID:   senderOID,
		ReceiverID: receiverOID,
		Status:     StatusPending,
		SentAt:     time.Now(),
	}
	if err := s.repo.CreateInterest(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

func (s *service) GetSentInterests(ctx context.Context, senderID string) ([]*InterestView, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, ErrInvalidID
	}

	interests, err := s.repo.ListSent(ctx, oid)
	if err != nil {
		return nil, err
	}
	// Sent listings show the receiver
	return s.populate(ctx, interests, func(i *Interest) primitive.ObjectID { return i.ReceiverID })
}

func (s *service) GetReceivedInterests(ctx context.Context, receiverID string) ([]*InterestView, error) {
	oid, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, ErrInvalidID
	}

	interests, err := s.repo.ListReceived(ctx, oid)
	if err != nil {
		return nil, err
	}
	// Received listings show the sender
	return s.populate(ctx, interests, func(i *Interest) primitive.ObjectID { return i.SenderID })
}

func (s *service) RespondToInterest(ctx context.Context, interestID, responderID string, accept bool) (*Interest, error) {
	id, err := primitive.ObjectIDFromHex(interestID)
	if err != nil {
		return nil, ErrInterestNotFound
	}
	responderOID, err := primitive.ObjectIDFromHex(responderID)
	if err != nil {
		return nil, ErrInvalidID
	}

	interest, err := s.repo.FindInterest(ctx, id)
	if err != nil {
		return nil, err
	}
	if interest.ReceiverID != responderOID {
		return nil, ErrNotReceiver
	}
	if interest.Status != StatusPending {
		return nil, ErrAlreadyClosed
	}

	status := StatusRejected
	if accept {
		status = StatusAccepted
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	interest.Status = status
	return interest, nil
}

// AddToWishlist bookmarks a profile and applies the like flow so the
// mutual unlock can trigger from a wishlist add.
func (s *service) AddToWishlist(ctx context.Context, userID, wishedUserID string) (*WishlistEntry, error) {
	userOID, wishedOID, err := parsePair(userID, wishedUserID)
	if err != nil {
		return nil, err
	}
	if userOID == wishedOID {
		return nil, ErrSelfInterest
	}

	entry := &WishlistEntry{
		UserID:       userOID,
		WishedUserID: wishedOID,
		AddedAt:      time.Now(),
	}
	if err := s.repo.CreateWish(ctx, entry); err != nil {
		return nil, err
	}

	// A like that already exists is fine; the bookmark is the point.
	if err := s.liker.Like(ctx, userID, wishedUserID); err != nil {
		log.Printf("Wishlist like for %s -> %s not applied: %v", userID, wishedUserID, err)
	}
	return entry, nil
}

func (s *service) GetWishlist(ctx context.Context, userID string) ([]*WishlistView, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	entries, err := s.repo.ListWishes(ctx, oid)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.WishedUserID)
	}
	summaries, err := s.repo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*WishlistView, len(entries))
	for i, entry := range entries {
		views[i] = &WishlistView{
			WishlistEntry: *entry,
			Profile:       summaries[entry.WishedUserID],
		}
	}
	return views, nil
}

func (s *service) RemoveFromWishlist(ctx context.Context, userID, wishedUserID string) error {
	userOID, wishedOID, err := parsePair(userID, wishedUserID)
	if err != nil {
		return err
	}

	removed, err := s.repo.DeleteWish(ctx, userOID, wishedOID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("wishlist entry: %w", ErrInterestNotFound)
	}
	return nil
}

func (s *service) populate(ctx context.Context, interests []*Interest, pick func(*Interest) primitive.ObjectID) ([]*InterestView, error) {
	ids := make([]primitive.ObjectID, 0, len(interests))
	seen := make(map[primitive.ObjectID]bool, len(interests))
	for _, interest := range interests {
		id := pick(interest)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	summaries, err := s.repo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*InterestView, len(interests))
	for i, interest := range interests {
		views[i] = &InterestView{
			Interest: *interest,
			Profile:  summaries[pick(interest)],
		}
	}
	return views, nil
}

func parsePair(idA, idB string) (primitive.ObjectID, primitive.ObjectID, error) {
	oidA, err := primitive.ObjectIDFromHex(idA)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidID
	}
	oidB, err := primitive.ObjectIDFromHex(idB)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidID
	}
	return oidA, oidB, nil
}
