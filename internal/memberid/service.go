// internal/memberid/service.go
// Business logic for member ID allocation, backfill and reporting.

package memberid

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"
)

var (
	// ErrAllocationExhausted is returned when every retry hit a
	// uniqueness conflict. With a 64^5 suffix space this means the
	// store is unhealthy, not that the space ran out.
	ErrAllocationExhausted = errors.New("could not allocate a unique member ID")
)

const (
	maxAllocationAttempts = 5
	migrationBatchSize    = 10
	migrationBatchPause   = 100 * time.Millisecond
)

type Service interface {
	// Ensure returns the profile's member ID, allocating and persisting
	// one keyed to the profile's creation date if absent. Idempotent.
	Ensure(ctx context.Context, userID string) (string, error)

	// MigrateAll backfills every profile lacking a member ID,
	// oldest-first, accumulating per-profile outcomes.
	MigrateAll(ctx context.Context) (*MigrationResult, error)

	// Stats reports allocation coverage across all profiles.
	Stats(ctx context.Context) (*MemberIDStats, error)

	// UsersWithoutMemberID pages through profiles still lacking an ID.
	UsersWithoutMemberID(ctx context.Context, page, limit int64) (*UnassignedPage, error)
}

// MigrationResult aggregates a full backfill run
type MigrationResult struct {
	Processed int               `json:"processed"`
	Errors    int               `json:"errors"`
	Results   []MigrationRecord `json:"results"`
}

// MigrationRecord is the outcome for a single profile
type MigrationRecord struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	MemberID string `json:"memberid,omitempty"`
	Status   string `json:"status"` // "success" or "error"
	Error    string `json:"error,omitempty"`
}

// MemberIDStats is a read-only aggregate report
type MemberIDStats struct {
	TotalProfiles        int64            `json:"total_profiles"`
	WithMemberID         int64            `json:"with_memberid"`
	WithoutMemberID      int64            `json:"without_memberid"`
	CompletionPercentage float64          `json:"completion_percentage"`
	RecentMembers        []*MemberProfile `json:"recent_members"`
}

// UnassignedPage is one page of profiles lacking a member ID
type UnassignedPage struct {
	Users      []*MemberProfile `json:"users"`
	Page       int64            `json:"page"`
	Limit      int64            `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"pages"`
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Ensure(ctx context.Context, userID string) (string, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	// Already identified: no write
	if profile.MemberID != "" {
		return profile.MemberID, nil
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		memberID := Allocate(profile.CreatedAt)

		err := s.repo.SetMemberIDIfAbsent(ctx, userID, memberID)
		switch {
		case err == nil:
			recordAllocation("allocated")
			log.Printf("Allocated member ID %s for user %s (%s)", memberID, profile.Name, profile.Email)
			return memberID, nil
		case errors.Is(err, ErrDuplicateMemberID):
			// Suffix collision, draw again
			recordAllocation("collision")
			continue
		case errors.Is(err, ErrAlreadyAssigned):
			// Lost a race to a concurrent Ensure; their ID wins
			existing, err := s.repo.FindByID(ctx, userID)
			if err != nil {
				return "", err
			}
			return existing.MemberID, nil
		default:
			return "", err
		}
	}

	recordAllocation("exhausted")
	return "", ErrAllocationExhausted
}

func (s *service) MigrateAll(ctx context.Context) (*MigrationResult, error) {
	pending, err := s.repo.FindWithoutMemberID(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{Results: []MigrationRecord{}}
	if len(pending) == 0 {
		return result, nil
	}

	log.Printf("Member ID migration: %d profiles to backfill", len(pending))

	var mu sync.Mutex
	for start := 0; start < len(pending); start += migrationBatchSize {
		end := start + migrationBatchSize
		if end > len(pending) {
			end = len(pending)
		}

		var wg sync.WaitGroup
		for _, profile := range pending[start:end] {
			wg.Add(1)
			go func(p *MemberProfile) {
				defer wg.Done()
				record := MigrationRecord{
					UserID: p.ID.Hex(),
					Name:   p.Name,
					Email:  p.Email,
				}

				memberID, err := s.Ensure(ctx, p.ID.Hex())
				if err != nil {
					record.Status = "error"
					record.Error = err.Error()
					log.Printf("Migration failed for user %s: %v", p.Name, err)
				} else {
					record.Status = "success"
					record.MemberID = memberID
				}

				mu.Lock()
				if record.Status == "success" {
					result.Processed++
				} else {
					result.Errors++
				}
				result.Results = append(result.Results, record)
				mu.Unlock()
			}(profile)
		}
		wg.Wait()

		// Small pause between batches to avoid hammering the store
		if end < len(pending) {
			select {
			case <-time.After(migrationBatchPause):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}

	log.Printf("Member ID migration completed: processed=%d errors=%d", result.Processed, result.Errors)
	return result, nil
}

func (s *service) Stats(ctx context.Context) (*MemberIDStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	with, err := s.repo.CountWithMemberID(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentWithMemberID(ctx, 5)
	if err != nil {
		return nil, err
	}

	stats := &MemberIDStats{
		TotalProfiles:   total,
		WithMemberID:    with,
		WithoutMemberID: total - with,
		RecentMembers:   recent,
	}
	if total > 0 {
		pct := float64(with) / float64(total) * 100
		stats.CompletionPercentage = math.Round(pct*100) / 100
	}
	return stats, nil
}

func (s *service) UsersWithoutMemberID(ctx context.Context, page, limit int64) (*UnassignedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, err := s.repo.FindWithoutMemberID(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountWithoutMemberID(ctx)
	if err != nil {
		return nil, err
	}

	return &UnassignedPage{
		Users:      users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
