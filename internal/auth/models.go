// internal/auth/models.go

package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthUser is the credential slice of a user document
type AuthUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Mobile    string             `bson:"mobile"`
	Password  string             `bson:"password"`
	Gender    string             `bson:"gender"`
	Age       int                `bson:"age"`
	UserType  string             `bson:"userType"`
	MemberID  string             `bson:"memberid,omitempty"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Age      int    `json:"age" validate:"required,min=18,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// TokenPair is returned on register, login and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthResponse bundles tokens with the signed-in identity
type AuthResponse struct {
	User   *UserSummary `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// UserSummary is the public identity echoed back after auth operations
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	MemberID string `json:"memberid,omitempty"`
	UserType string `json:"user_type"`
}
