// internal/auth/service.go

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/prempath/prempath-backend/internal/common/utils"
	"github.com/prempath/prempath-backend/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	UserTypeOrdinary = "user"
	UserTypeAdmin    = "admin"
)

// EmailSender is the outbound mail collaborator
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MemberIDAllocator assigns a member ID to a freshly registered profile
type MemberIDAllocator interface {
	Ensure(ctx context.Context, userID string) (string, error)
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*utils.JWTClaims, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo      Repository
	tokens    ResetTokenStore
	emails    EmailSender
	memberIDs MemberIDAllocator
	cfg       *config.Config
}

func NewService(repo Repository, tokens ResetTokenStore, emails EmailSender, memberIDs MemberIDAllocator, cfg *config.Config) Service {
	return &service{
		repo:      repo,
		tokens:    tokens,
		emails:    emails,
		memberIDs: memberIDs,
		cfg:       cfg,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &AuthUser{
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  string(hashed),
		Gender:    req.Gender,
		Age:       req.Age,
		UserType:  UserTypeOrdinary,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Member ID assignment is best effort at registration; the matching
	// layer backfills anything missed here.
	memberID, err := s.memberIDs.Ensure(ctx, user.ID.Hex())
	if err != nil {
		log.Printf("Member ID assignment failed for new user %s: %v", user.ID.Hex(), err)
	} else {
		user.MemberID = memberID
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: summarize(user), Tokens: tokens}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: summarize(user), Tokens: tokens}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(user)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same response whether or not the account exists
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.tokens.Save(ctx, token, user.ID.Hex(), s.cfg.PasswordResetExpiry); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, token)
	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. Open the link below to choose a new password. The link expires in %s.\n\n%s\n\nIf you did not request this, ignore this email.",
		user.Name, s.cfg.PasswordResetExpiry, resetLink,
	)
	if err := s.emails.SendEmail(ctx, user.Email, "Reset your password", body); err != nil {
		log.Printf("Failed to send reset email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BCryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, oid, string(hashed))
}

func (s *service) ValidateToken(tokenString string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) signToken(user *AuthUser, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	return utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		UserType:  user.UserType,
		Type:      tokenType,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "prempath",
		Subject:   user.ID.Hex(),
	}, s.cfg.JWTSecret)
}

func (s *service) issueTokens(user *AuthUser) (*TokenPair, error) {
	access, err := s.signToken(user, "access", s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenExpiry.Seconds()),
	}, nil
}

func summarize(user *AuthUser) *UserSummary {
	return &UserSummary{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Email:    user.Email,
		MemberID: user.MemberID,
		UserType: user.UserType,
	}
}
