// internal/matching/visibility.go
// The visibility gate. Private fields stay redacted until both sides
// have liked each other. The projection is recomputed per request
// because mutuality belongs to the pair, not to either profile.

package matching

// Placeholders shown to non-mutual viewers
const (
	placeholderPhoto  = "/blurred.png"
	placeholderAbout  = "Like to unlock full details"
	placeholderMobile = "Hidden. Like each other to unlock"
)

// ProfileView is the redacted projection of a profile for one viewer
type ProfileView struct {
	ID           string         `json:"id"`
	MemberID     string         `json:"memberid,omitempty"`
	Name         string         `json:"name"`
	Age          int            `json:"age"`
	Location     string         `json:"location"`
	Photo        string         `json:"photo"`
	About        string         `json:"about"`
	Mobile       string         `json:"mobile"`
	Gallery      []GalleryPhoto `json:"gallery"`
	IsMutualLike bool           `json:"is_mutual_like"`
}

// projectProfile applies the visibility policy to target for a viewer
// whose mutuality with the target is already known. Name, age and
// location are always visible; photo, about text, mobile number and
// the gallery unlock only on mutual like.
func projectProfile(target *MatchProfile, gallery []GalleryPhoto, mutual bool) *ProfileView {
	view := &ProfileView{
		ID:           target.ID.Hex(),
		MemberID:     target.MemberID,
		Name:         target.Name,
		Age:          target.Age,
		Location:     target.Location,
		IsMutualLike: mutual,
		Gallery:      []GalleryPhoto{},
	}

	if mutual {
		view.Photo = target.ProfilePhoto
		view.About = target.About
		view.Mobile = target.Mobile
		if gallery != nil {
			view.Gallery = gallery
		}
		return view
	}

	view.Photo = placeholderPhoto
	view.About = placeholderAbout
	view.Mobile = placeholderMobile
	return view
}
