// internal/interest/models.go

package interest

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interest statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Interest is a formal expression of interest from one profile to
// another, distinct from a like.
type Interest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"sender_id"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiver_id"`
	Status     string             `bson:"status" json:"status"`
	SentAt     time.Time          `bson:"sentAt" json:"sent_at"`
}

// WishlistEntry bookmarks another profile
type WishlistEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"user_id"`
	WishedUserID primitive.ObjectID `bson:"wishedUserId" json:"wished_user_id"`
	AddedAt      time.Time          `bson:"addedAt" json:"added_at"`
}

// ProfileSummary is the populated counterpart shown in interest and
// wishlist listings.
type ProfileSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MemberID string `json:"memberid,omitempty"`
	Age      int    `json:"age"`
	Location string `json:"location,omitempty"`
	Religion string `json:"religion,omitempty"`
	Caste    string `json:"caste,omitempty"`
}

// InterestView is an interest with the other party populated
type InterestView struct {
	Interest
	Profile *ProfileSummary `json:"profile,omitempty"`
}

// WishlistView is a wishlist entry with the wished profile populated
type WishlistView struct {
	WishlistEntry
	Profile *ProfileSummary `json:"profile,omitempty"`
}
