package memberid

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRepo is an in-memory Repository used to observe writes
type fakeRepo struct {
	profiles map[string]*MemberProfile
	writes   int

	// rejectNext forces the next N conditional updates to fail with a
	// duplicate-key conflict
	rejectNext int

	// failWrites forces every conditional update to fail hard
	failWrites bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*MemberProfile)}
}

func (f *fakeRepo) add(name string, memberID string, createdAt time.Time) string {
	id := primitive.NewObjectID()
	f.profiles[id.Hex()] = &MemberProfile{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		MemberID:  memberID,
		CreatedAt: createdAt,
	}
	return id.Hex()
}

func (f *fakeRepo) FindByID(ctx context.Context, userID string) (*MemberProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) SetMemberIDIfAbsent(ctx context.Context, userID, memberID string) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	if f.rejectNext > 0 {
		f.rejectNext--
		return ErrDuplicateMemberID
	}
	p, ok := f.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	if p.MemberID != "" {
		return ErrAlreadyAssigned
	}
	p.MemberID = memberID
	f.writes++
	return nil
}

func (f *fakeRepo) FindWithoutMemberID(ctx context.Context, skip, limit int64) ([]*MemberProfile, error) {
	var out []*MemberProfile
	for _, p := range f.profiles {
		if p.MemberID == "" {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountWithoutMemberID(ctx context.Context) (int64, error) {
	n, _ := f.FindWithoutMemberID(ctx, 0, 0)
	return int64(len(n)), nil
}

func (f *fakeRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func (f *fakeRepo) CountWithMemberID(ctx context.Context) (int64, error) {
	var n int64
	for _, p := range f.profiles {
		if p.MemberID != "" {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) RecentWithMemberID(ctx context.Context, limit int64) ([]*MemberProfile, error) {
	var out []*MemberProfile
	for _, p := range f.profiles {
		if p.MemberID != "" {
			cp := *p
			out = append(out, &cp)
			if int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func TestEnsureAllocatesForMissingID(t *testing.T) {
	repo := newFakeRepo()
	created := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	userID := repo.add("asha", "", created)

	svc := NewService(repo)
	memberID, err := svc.Ensure(context.Background(), userID)
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}

	if !Validate(memberID) {
		t.Errorf("Ensure produced invalid member ID %q", memberID)
	}
	// Cohort stamp must come from the creation date, not now
	if memberID[:8] != "PP202406" {
		t.Errorf("member ID %q not stamped with creation cohort PP202406", memberID)
	}
	if repo.writes != 1 {
		t.Errorf("expected 1 write, got %d", repo.writes)
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	userID := repo.add("ravi", "", time.Now())
	svc := NewService(repo)

	first, err := svc.Ensure(context.Background(), userID)
	if err != nil {
		t.Fatalf("first Ensure: %v", err)
	}

	second, err := svc.Ensure(context.Background(), userID)
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}

	if first != second {
		t.Errorf("Ensure not idempotent: %q then %q", first, second)
	}
	if repo.writes != 1 {
		t.Errorf("second Ensure wrote again: %d writes", repo.writes)
	}
}

func TestEnsureRetriesOnCollision(t *testing.T) {
	repo := newFakeRepo()
	userID := repo.add("meera", "", time.Now())
	repo.rejectNext = 2
	svc := NewService(repo)

	memberID, err := svc.Ensure(context.Background(), userID)
	if err != nil {
		t.Fatalf("Ensure should survive collisions, got %v", err)
	}
	if memberID == "" {
		t.Fatal("Ensure returned empty member ID")
	}
}

func TestEnsureGivesUpAfterBoundedRetries(t *testing.T) {
	repo := newFakeRepo()
	userID := repo.add("dev", "", time.Now())
	repo.rejectNext = maxAllocationAttempts + 1
	svc := NewService(repo)

	_, err := svc.Ensure(context.Background(), userID)
	if !errors.Is(err, ErrAllocationExhausted) {
		t.Fatalf("expected ErrAllocationExhausted, got %v", err)
	}
}

func TestEnsureUnknownProfile(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Ensure(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMigrateAllAccumulatesOutcomes(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 25; i++ {
		repo.add("user", "", time.Now())
	}
	repo.add("done", "PP202401abcde", time.Now())
	svc := NewService(repo)

	result, err := svc.MigrateAll(context.Background())
	if err != nil {
		t.Fatalf("MigrateAll: %v", err)
	}

	if result.Processed != 25 {
		t.Errorf("processed = %d, want 25", result.Processed)
	}
	if result.Errors != 0 {
		t.Errorf("errors = %d, want 0", result.Errors)
	}
	if len(result.Results) != 25 {
		t.Errorf("results = %d, want 25", len(result.Results))
	}
}

func TestMigrateAllSurvivesFailures(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 5; i++ {
		repo.add("user", "", time.Now())
	}
	repo.failWrites = true
	svc := NewService(repo)

	result, err := svc.MigrateAll(context.Background())
	if err != nil {
		t.Fatalf("MigrateAll must not abort on per-profile failures: %v", err)
	}

	if result.Errors != 5 {
		t.Errorf("errors = %d, want 5", result.Errors)
	}
	if result.Processed != 0 {
		t.Errorf("processed = %d, want 0", result.Processed)
	}
}

func TestStats(t *testing.T) {
	repo := newFakeRepo()
	repo.add("a", "PP202401abcde", time.Now())
	repo.add("b", "PP202402abcde", time.Now())
	repo.add("c", "", time.Now())
	repo.add("d", "", time.Now())
	svc := NewService(repo)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalProfiles != 4 || stats.WithMemberID != 2 || stats.WithoutMemberID != 2 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.CompletionPercentage != 50 {
		t.Errorf("completion = %v, want 50", stats.CompletionPercentage)
	}
}
