// internal/matching/scoring.go
// Attribute similarity scoring and pool-relative percentage scaling.

package matching

import "math"

// Scoring weights. The theoretical maximum (13) is never used as a
// denominator: percentages are rescaled against the pool per request.
const (
	ageProximityPoints = 2
	sameReligionPoints = 3
	sameCastePoints    = 3
	sameLocationPoints = 2
	viewerLikesPoints  = 1
	likesViewerPoints  = 2
	ageProximityYears  = 3
)

// scoreCandidate accumulates similarity points between the viewer and
// one candidate, including the directional like signals.
func scoreCandidate(viewer, candidate *MatchProfile) int {
	score := 0

	ageDiff := viewer.Age - candidate.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	if ageDiff <= ageProximityYears {
		score += ageProximityPoints
	}

	if candidate.Religion == viewer.Religion {
		score += sameReligionPoints
	}
	if candidate.Caste == viewer.Caste {
		score += sameCastePoints
	}
	if candidate.Location == viewer.Location {
		score += sameLocationPoints
	}
	if viewer.HasLiked(candidate.ID) {
		score += viewerLikesPoints
	}
	if candidate.HasLiked(viewer.ID) {
		score += likesViewerPoints
	}

	return score
}

// scalePercentages maps raw scores into [50,100] relative to this
// pool's min and max. A degenerate pool (all scores equal) maps every
// candidate to 100. This is a per-request relative ranking, not an
// absolute compatibility probability.
func scalePercentages(scores []int) []int {
	if len(scores) == 0 {
		return nil
	}

	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	percentages := make([]int, len(scores))
	for i, s := range scores {
		if maxScore == minScore {
			percentages[i] = 100
			continue
		}
		scaled := 50 + float64(s-minScore)/float64(maxScore-minScore)*50
		percentages[i] = int(math.Round(scaled))
	}
	return percentages
}
