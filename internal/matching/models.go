// internal/matching/models.go

package matching

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types. Administrative profiles live outside every matching pool.
const (
	UserTypeOrdinary = "user"
	UserTypeAdmin    = "admin"
)

// MatchProfile is the slice of a profile document the matching engine
// reads. The likes field is the profile's outbound like set.
type MatchProfile struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Name         string               `bson:"name"`
	Gender       string               `bson:"gender"`
	Age          int                  `bson:"age"`
	Location     string               `bson:"location"`
	Religion     string               `bson:"religion"`
	Caste        string               `bson:"caste"`
	About        string               `bson:"aboutMe"`
	Mobile       string               `bson:"mobile"`
	ProfilePhoto string               `bson:"profilePhoto"`
	MemberID     string               `bson:"memberid"`
	UserType     string               `bson:"userType"`
	IsActive     bool                 `bson:"isActive"`
	Likes        []primitive.ObjectID `bson:"likes"`
	CreatedAt    time.Time            `bson:"createdAt"`
}

// HasLiked reports whether this profile's outbound like set contains id
func (p *MatchProfile) HasLiked(id primitive.ObjectID) bool {
	for _, liked := range p.Likes {
		if liked == id {
			return true
		}
	}
	return false
}

// GalleryPhoto is a single photo entry in a profile's gallery
type GalleryPhoto struct {
	URL       string `bson:"url" json:"url"`
	IsProfile bool   `bson:"isProfile" json:"is_profile"`
}

// SearchFilters narrows the search pool. Zero values mean "no filter".
type SearchFilters struct {
	MaxAge   int
	Location string
	Religion string
	Caste    string
}

// LikeResult reports the state after a toggle
type LikeResult struct {
	Liked   bool   `json:"liked"`
	Message string `json:"message"`
}

// RemovalOutcome distinguishes the three results of an administrative
// forced like removal.
type RemovalOutcome string

const (
	// RemovedRelationship: the like existed and was removed (any
	// paired notification went with it)
	RemovedRelationship RemovalOutcome = "relationship_removed"

	// RemovedNotificationOnly: no like existed, but a stray like
	// notification did and was deleted. Partial success.
	RemovedNotificationOnly RemovalOutcome = "notification_removed"

	// RemovedNothing: neither a like nor a notification was found
	RemovedNothing RemovalOutcome = "nothing_found"
)
