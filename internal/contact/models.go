// internal/contact/models.go

package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message statuses
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// Message is an inquiry submitted through the public contact form.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// CreateRequest is the public submission payload
type CreateRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// UpdateStatusRequest moves a message through the triage states
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

// ListFilters narrows the admin listing
type ListFilters struct {
	Status string
	Page   int
	Limit  int
}

// ListResult is a page of messages with the total for pagination
type ListResult struct {
	Messages   []*Message `json:"messages"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// Stats counts messages per status
type Stats struct {
	Total   int64 `json:"total"`
	New     int64 `json:"new"`
	Read    int64 `json:"read"`
	Replied int64 `json:"replied"`
}
