// internal/contact/service_test.go

package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	messages map[primitive.ObjectID]*Message
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{messages: make(map[primitive.ObjectID]*Message)}
}

func (f *fakeRepo) Create(_ context.Context, message *Message) error {
	message.ID = primitive.NewObjectID()
	f.messages[message.ID] = message
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Message, error) {
	message, ok := f.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

func (f *fakeRepo) List(_ context.Context, filters *ListFilters) ([]*Message, int64, error) {
	var out []*Message
	for _, message := range f.messages {
		if filters.Status != "" && message.Status != filters.Status {
			continue
		}
		out = append(out, message)
	}
	total := int64(len(out))
	start := (filters.Page - 1) * filters.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filters.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*Message, error) {
	message, ok := f.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	message.Status = status
	message.UpdatedAt = time.Now()
	return message, nil
}

func (f *fakeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.messages[id]; !ok {
		return ErrMessageNotFound
	}
	delete(f.messages, id)
	return nil
}

func (f *fakeRepo) StatsByStatus(_ context.Context) (*Stats, error) {
	stats := &Stats{}
	for _, message := range f.messages {
		stats.Total++
		switch message.Status {
		case StatusNew:
			stats.New++
		case StatusRead:
			stats.Read++
		case StatusReplied:
			stats.Replied++
		}
	}
	return stats, nil
}

func TestSubmitStartsAsNew(t *testing.T) {
	svc := NewService(newFakeRepo())

	message, err := svc.Submit(context.Background(), &CreateRequest{
		Email:   "visitor@example.com",
		Message: "How do I verify my profile?",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if message.Status != StatusNew {
		t.Errorf("status = %q, want %q", message.Status, StatusNew)
	}
	if message.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestListMessagesClampsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), &CreateRequest{
			Email:   "visitor@example.com",
			Message: "Message body long enough",
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	result, err := svc.ListMessages(context.Background(), &ListFilters{Page: -5, Limit: 10000})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if result.Page != 1 || result.Limit != defaultLimit {
		t.Errorf("page = %d limit = %d, want clamped defaults", result.Page, result.Limit)
	}
	if result.TotalCount != 3 {
		t.Errorf("total = %d, want 3", result.TotalCount)
	}
}

func TestUpdateStatusUnknownMessage(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), StatusRead)
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("got %v, want ErrMessageNotFound", err)
	}
}

func TestUpdateStatusInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpdateStatus(context.Background(), "not-a-hex-id", StatusRead)
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("got %v, want ErrMessageNotFound", err)
	}
}

func TestGetStatsCountsPerStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	statuses := []string{StatusNew, StatusNew, StatusRead, StatusReplied}
	for _, status := range statuses {
		message, err := svc.Submit(context.Background(), &CreateRequest{
			Email:   "visitor@example.com",
			Message: "Message body long enough",
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if status != StatusNew {
			if _, err := svc.UpdateStatus(context.Background(), message.ID.Hex(), status); err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
		}
	}

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 4 || stats.New != 2 || stats.Read != 1 || stats.Replied != 1 {
		t.Errorf("stats = %+v, want 4/2/1/1", stats)
	}
}
