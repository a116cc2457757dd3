// internal/matching/service.go
// Likes, mutuality, gated profile views and recommendations.

package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidID       = errors.New("invalid profile id")
	ErrSelfLike        = errors.New("you cannot like yourself")
	ErrAlreadyLiked    = errors.New("you have already liked this profile")
)

// Notifier is the notification collaborator. NotifyLike is
// fire-and-forget: the like succeeds even if the notification fails.
type Notifier interface {
	NotifyLike(ctx context.Context, senderID, senderName, receiverID string)
	DeleteLikeNotifications(ctx context.Context, senderID, receiverID string) (int64, error)
}

// MemberIDAllocator lazily guarantees identifiers on profiles returned
// from matching pools.
type MemberIDAllocator interface {
	Ensure(ctx context.Context, userID string) (string, error)
}

// Recommendation pairs a gated profile view with its pool-relative
// match percentage.
type Recommendation struct {
	Profile         *ProfileView `json:"profile"`
	MatchPercentage int          `json:"match_percentage"`
	IsMutualLike    bool         `json:"is_mutual_like"`
}

type Service interface {
	// Like set
	Like(ctx context.Context, viewerID, targetID string) error
	Unlike(ctx context.Context, viewerID, targetID string) error
	ToggleLike(ctx context.Context, viewerID, targetID string) (*LikeResult, error)
	IsMutual(ctx context.Context, idA, idB string) (bool, error)

	// Pools
	GetMatches(ctx context.Context, viewerID string) ([]*ProfileView, error)
	Search(ctx context.Context, viewerID string, filters *SearchFilters) ([]*ProfileView, error)
	Recommend(ctx context.Context, viewerID string) ([]*Recommendation, error)
	ViewProfile(ctx context.Context, viewerID, targetID string) (*ProfileView, error)

	// Moderation
	ForceRemoveLike(ctx context.Context, senderID, receiverID string) (RemovalOutcome, error)
}

type service struct {
	repo      Repository
	notifier  Notifier
	memberIDs MemberIDAllocator
}

func NewService(repo Repository, notifier Notifier, memberIDs MemberIDAllocator) Service {
	return &service{
		repo:      repo,
		notifier:  notifier,
		memberIDs: memberIDs,
	}
}

func (s *service) Like(ctx context.Context, viewerID, targetID string) error {
	viewerOID, targetOID, err := parsePair(viewerID, targetID)
	if err != nil {
		return err
	}
	if viewerOID == targetOID {
		return ErrSelfLike
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return err
	}

	// Administrative profiles cannot be liked
	target, err := s.repo.GetOrdinaryProfile(ctx, targetOID)
	if err != nil {
		return err
	}

	if viewer.HasLiked(targetOID) {
		return ErrAlreadyLiked
	}

	if err := s.repo.AddLike(ctx, viewerOID, targetOID); err != nil {
		return err
	}
	recordLike("like")

	s.notifier.NotifyLike(ctx, viewerID, viewer.Name, target.ID.Hex())
	return nil
}

func (s *service) Unlike(ctx context.Context, viewerID, targetID string) error {
	viewerOID, targetOID, err := parsePair(viewerID, targetID)
	if err != nil {
		return err
	}

	removed, err := s.repo.RemoveLike(ctx, viewerOID, targetOID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrProfileNotFound
	}
	recordLike("unlike")
	return nil
}

// ToggleLike flips the viewer's like on target. Only the like half
// emits a notification.
func (s *service) ToggleLike(ctx context.Context, viewerID, targetID string) (*LikeResult, error) {
	viewerOID, targetOID, err := parsePair(viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if viewerOID == targetOID {
		return nil, ErrSelfLike
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.GetOrdinaryProfile(ctx, targetOID)
	if err != nil {
		return nil, err
	}

	if viewer.HasLiked(targetOID) {
		if _, err := s.repo.RemoveLike(ctx, viewerOID, targetOID); err != nil {
			return nil, err
		}
		recordLike("unlike")
		return &LikeResult{Liked: false, Message: "You unliked the profile."}, nil
	}

	if err := s.repo.AddLike(ctx, viewerOID, targetOID); err != nil {
		return nil, err
	}
	recordLike("like")

	s.notifier.NotifyLike(ctx, viewerID, viewer.Name, target.ID.Hex())
	return &LikeResult{Liked: true, Message: fmt.Sprintf("%s liked your profile.", viewer.Name)}, nil
}

// IsMutual is a pure derived read: true iff each side's like set
// contains the other. Symmetric by construction.
func (s *service) IsMutual(ctx context.Context, idA, idB string) (bool, error) {
	oidA, oidB, err := parsePair(idA, idB)
	if err != nil {
		return false, err
	}

	a, err := s.repo.GetProfile(ctx, oidA)
	if err != nil {
		return false, err
	}
	b, err := s.repo.GetProfile(ctx, oidB)
	if err != nil {
		return false, err
	}

	return a.HasLiked(oidB) && b.HasLiked(oidA), nil
}

func (s *service) GetMatches(ctx context.Context, viewerID string) ([]*ProfileView, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return nil, err
	}

	mutuals, err := s.repo.FindMutualMatches(ctx, viewer)
	if err != nil {
		return nil, err
	}

	views := make([]*ProfileView, 0, len(mutuals))
	for _, match := range mutuals {
		gallery, err := s.repo.GetGalleryPhotos(ctx, match.ID)
		if err != nil {
			log.Printf("Gallery fetch failed for %s: %v", match.ID.Hex(), err)
			gallery = []GalleryPhoto{}
		}
		// Every profile here is mutual by definition
		views = append(views, projectProfile(match, gallery, true))
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, viewerID string, filters *SearchFilters) ([]*ProfileView, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.SearchProfiles(ctx, filters)
	if err != nil {
		return nil, err
	}

	views := make([]*ProfileView, 0, len(profiles))
	for _, profile := range profiles {
		if profile.ID == viewerOID {
			continue
		}
		views = append(views, s.gatedView(ctx, viewer, profile))
	}
	return views, nil
}

// ViewProfile returns the target redacted for this viewer
func (s *service) ViewProfile(ctx context.Context, viewerID, targetID string) (*ProfileView, error) {
	viewerOID, targetOID, err := parsePair(viewerID, targetID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.GetOrdinaryProfile(ctx, targetOID)
	if err != nil {
		return nil, err
	}

	return s.gatedView(ctx, viewer, target), nil
}

// Recommend scores and ranks the viewer's candidate pool. The whole
// eligible pool is scored per request; paging is a caller concern.
func (s *service) Recommend(ctx context.Context, viewerID string) ([]*Recommendation, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	viewer, err := s.repo.GetProfile(ctx, viewerOID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.FindCandidates(ctx, viewerOID, viewer.Gender)
	if err != nil {
		return nil, err
	}

	// Every returned profile must carry a member ID. Candidates whose
	// backfill fails are dropped, not defaulted.
	eligible := make([]*MatchProfile, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.MemberID == "" {
			memberID, err := s.memberIDs.Ensure(ctx, candidate.ID.Hex())
			if err != nil {
				log.Printf("Dropping candidate %s: member ID backfill failed: %v", candidate.ID.Hex(), err)
				continue
			}
			candidate.MemberID = memberID
		}
		eligible = append(eligible, candidate)
	}

	scores := make([]int, len(eligible))
	for i, candidate := range eligible {
		scores[i] = scoreCandidate(viewer, candidate)
	}
	percentages := scalePercentages(scores)

	recommendations := make([]*Recommendation, len(eligible))
	for i, candidate := range eligible {
		mutual := viewer.HasLiked(candidate.ID) && candidate.HasLiked(viewerOID)

		var gallery []GalleryPhoto
		if mutual {
			gallery, err = s.repo.GetGalleryPhotos(ctx, candidate.ID)
			if err != nil {
				gallery = []GalleryPhoto{}
			}
		}

		recommendations[i] = &Recommendation{
			Profile:         projectProfile(candidate, gallery, mutual),
			MatchPercentage: percentages[i],
			IsMutualLike:    mutual,
		}
		recordMatchPercentage(percentages[i])
	}

	// Descending by percentage; candidate ID ascending as the
	// deterministic tie-break.
	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].MatchPercentage != recommendations[j].MatchPercentage {
			return recommendations[i].MatchPercentage > recommendations[j].MatchPercentage
		}
		return recommendations[i].Profile.ID < recommendations[j].Profile.ID
	})

	recordRecommendationPool(len(recommendations))
	return recommendations, nil
}

// ForceRemoveLike is the administrative moderation path: it removes
// sender's like of receiver and the paired like notification. The
// three outcomes are distinguishable so callers can report partial
// cleanup.
func (s *service) ForceRemoveLike(ctx context.Context, senderID, receiverID string) (RemovalOutcome, error) {
	senderOID, receiverOID, err := parsePair(senderID, receiverID)
	if err != nil {
		return RemovedNothing, err
	}

	removed, err := s.repo.RemoveLike(ctx, senderOID, receiverOID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return RemovedNothing, err
	}

	deleted, nerr := s.notifier.DeleteLikeNotifications(ctx, senderID, receiverID)
	if nerr != nil {
		log.Printf("Like notification cleanup failed for %s -> %s: %v", senderID, receiverID, nerr)
	}

	switch {
	case removed:
		return RemovedRelationship, nil
	case deleted > 0:
		return RemovedNotificationOnly, nil
	default:
		return RemovedNothing, nil
	}
}

func (s *service) gatedView(ctx context.Context, viewer, target *MatchProfile) *ProfileView {
	mutual := viewer.HasLiked(target.ID) && target.HasLiked(viewer.ID)

	var gallery []GalleryPhoto
	if mutual {
		var err error
		gallery, err = s.repo.GetGalleryPhotos(ctx, target.ID)
		if err != nil {
			gallery = []GalleryPhoto{}
		}
	}
	return projectProfile(target, gallery, mutual)
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
