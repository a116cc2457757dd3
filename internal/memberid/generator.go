// internal/memberid/generator.go
// Member ID generation and format validation.
//
// Two formats are in circulation and both stay valid forever:
//   legacy:  PP + YYYY + MM + 3 decimal digits   (PP202501001)
//   current: PP + YYYY + MM + 5 chars of [A-Za-z0-9_-]  (PP202501aZ9-k)

package memberid

import (
	"crypto/rand"
	"regexp"
	"time"
)

const (
	// Prefix identifies PremPath member IDs
	Prefix = "PP"

	suffixLength = 5
)

// suffixAlphabet is URL-safe and case-sensitive. 64 characters, so a
// random byte maps onto it without modulo bias.
const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

var (
	legacyFormat  = regexp.MustCompile(`^PP(20\d{2})(0[1-9]|1[0-2])\d{3}$`)
	currentFormat = regexp.MustCompile(`^PP(20\d{2})(0[1-9]|1[0-2])[A-Za-z0-9_-]{5}$`)
)

// Allocate produces a new member ID stamped with the year and month of
// referenceDate. Backfill callers pass the profile's creation time so
// the ID reflects the original registration cohort, not migration time.
// Uniqueness is not guaranteed here; the store's unique index rejects
// collisions and the caller retries with a fresh draw.
func Allocate(referenceDate time.Time) string {
	buf := make([]byte, suffixLength)
	// crypto/rand.Read only fails when the OS entropy source is broken
	rand.Read(buf)

	suffix := make([]byte, suffixLength)
	for i, b := range buf {
		suffix[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}

	return Prefix + referenceDate.Format("200601") + string(suffix)
}

// Validate reports whether memberID matches either accepted format.
func Validate(memberID string) bool {
	if memberID == "" {
		return false
	}
	return legacyFormat.MatchString(memberID) || currentFormat.MatchString(memberID)
}
