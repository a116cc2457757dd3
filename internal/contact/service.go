// internal/contact/service.go

package contact

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type Service interface {
	Submit(ctx context.Context, req *CreateRequest) (*Message, error)
	GetMessage(ctx context.Context, id string) (*Message, error)
	ListMessages(ctx context.Context, filters *ListFilters) (*ListResult, error)
	UpdateStatus(ctx context.Context, id, status string) (*Message, error)
	DeleteMessage(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, req *CreateRequest) (*Message, error) {
	now := time.Now()
	message := &Message{
		Email:     req.Email,
		Message:   req.Message,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}
	recordSubmission()
	return message, nil
}

func (s *service) GetMessage(ctx context.Context, id string) (*Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *service) ListMessages(ctx context.Context, filters *ListFilters) (*ListResult, error) {
	if filters == nil {
		filters = &ListFilters{}
	}
	if filters.Page < 1 {
		filters.Page = defaultPage
	}
	if filters.Limit < 1 || filters.Limit > maxLimit {
		filters.Limit = defaultLimit
	}

	messages, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Messages:   messages,
		TotalCount: total,
		Page:       filters.Page,
		Limit:      filters.Limit,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	return s.repo.UpdateStatus(ctx, oid, status)
}

func (s *service) DeleteMessage(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMessageNotFound
	}
	return s.repo.Delete(ctx, oid)
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.StatsByStatus(ctx)
}
