// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid profile id")

// MemberIDAllocator backfills identifiers on profiles surfaced through
// listings.
type MemberIDAllocator interface {
	Ensure(ctx context.Context, userID string) (string, error)
}

// ProfileWithGallery is the self-view payload
type ProfileWithGallery struct {
	Profile *Profile `json:"profile"`
	Gallery *Gallery `json:"gallery"`
}

type Service interface {
	GetOwnProfile(ctx context.Context, userID string) (*ProfileWithGallery, error)
	GetProfileByID(ctx context.Context, id string) (*Profile, error)
	UpdateOwnProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	ListProfiles(ctx context.Context, viewerID string, filters *ListFilters) ([]*Profile, error)

	// Photos
	UploadProfilePhoto(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error)
	UploadGalleryPhoto(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*Gallery, error)
	GetGallery(ctx context.Context, userID string) (*Gallery, error)
	DeleteGalleryPhoto(ctx context.Context, userID, url string) error

	// Moderation
	AdminUpdateProfile(ctx context.Context, id string, req *AdminUpdateRequest) (*Profile, error)
	AdminDeleteProfile(ctx context.Context, id string) error
	ListAdmins(ctx context.Context) ([]*Profile, error)
}

type service struct {
	repo      Repository
	uploads   UploadService
	memberIDs MemberIDAllocator
}

func NewService(repo Repository, uploads UploadService, memberIDs MemberIDAllocator) Service {
	return &service{
		repo:      repo,
		uploads:   uploads,
		memberIDs: memberIDs,
	}
}

// GetOwnProfile returns the caller's profile with its gallery. A
// missing member ID is assigned on the way out.
func (s *service) GetOwnProfile(ctx context.Context, userID string) (*ProfileWithGallery, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	profile, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if profile.MemberID == "" {
		memberID, err := s.memberIDs.Ensure(ctx, userID)
		if err != nil {
			log.Printf("Member ID backfill failed for %s: %v", userID, err)
		} else {
			profile.MemberID = memberID
		}
	}

	gallery, err := s.repo.GetGallery(ctx, oid)
	if err != nil {
		return nil, err
	}

	return &ProfileWithGallery{Profile: profile, Gallery: gallery}, nil
}

func (s *service) GetProfileByID(ctx context.Context, id string) (*Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *service) UpdateOwnProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	updates := updatesFromRequest(req)
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, oid)
	}
	return s.repo.Update(ctx, oid, updates)
}

// ListProfiles returns the active ordinary profiles matching filters,
// excluding the viewer. Every listed profile carries a member ID.
func (s *service) ListProfiles(ctx context.Context, viewerID string, filters *ListFilters) ([]*Profile, error) {
	oid, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	profiles, err := s.repo.List(ctx, oid, filters)
	if err != nil {
		return nil, err
	}

	listed := make([]*Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.MemberID == "" {
			memberID, err := s.memberIDs.Ensure(ctx, p.ID.Hex())
			if err != nil {
				log.Printf("Dropping listing %s: member ID backfill failed: %v", p.ID.Hex(), err)
				continue
			}
			p.MemberID = memberID
		}
		listed = append(listed, p)
	}
	return listed, nil
}

func (s *service) UploadProfilePhoto(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", ErrInvalidID
	}

	url, err := s.uploads.UploadFile(ctx, file, header, "profiles")
	if err != nil {
		return "", fmt.Errorf("photo upload failed: %w", err)
	}

	if err := s.repo.SetProfilePhoto(ctx, oid, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) UploadGalleryPhoto(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*Gallery, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	url, err := s.uploads.UploadFile(ctx, file, header, "gallery")
	if err != nil {
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}

	return s.repo.AddGalleryPhoto(ctx, oid, GalleryPhoto{URL: url})
}

func (s *service) GetGallery(ctx context.Context, userID string) (*Gallery, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.GetGallery(ctx, oid)
}

func (s *service) DeleteGalleryPhoto(ctx context.Context, userID, url string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	removed, err := s.repo.RemoveGalleryPhoto(ctx, oid, url)
	if err != nil {
		return err
	}
	if !removed {
		return ErrProfileNotFound
	}

	// The document is the source of truth; stored file cleanup is best
	// effort.
	if err := s.uploads.DeleteFile(ctx, url); err != nil {
		log.Printf("Failed to remove stored photo %s: %v", url, err)
	}
	return nil
}

func (s *service) AdminUpdateProfile(ctx context.Context, id string, req *AdminUpdateRequest) (*Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	updates := updatesFromRequest(&req.UpdateProfileRequest)
	if req.ProfileStatus != "" {
		updates["profileStatus"] = req.ProfileStatus
	}
	if req.ProfileType != "" {
		updates["profileType"] = req.ProfileType
	}
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, oid)
	}
	return s.repo.Update(ctx, oid, updates)
}

// AdminDeleteProfile removes the profile and its gallery
func (s *service) AdminDeleteProfile(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	if err := s.repo.DeleteGallery(ctx, oid); err != nil {
		log.Printf("Failed to delete gallery for %s: %v", id, err)
	}
	return nil
}

func (s *service) ListAdmins(ctx context.Context) ([]*Profile, error) {
	return s.repo.ListAdmins(ctx)
}

// updatesFromRequest maps the set fields of a request onto their
// document keys. Zero values are skipped so partial updates do not
// blank existing data.
func updatesFromRequest(req *UpdateProfileRequest) bson.M {
	updates := bson.M{}
	set := func(key, value string) {
		if value != "" {
			updates[key] = value
		}
	}

	set("name", req.Name)
	set("gender", req.Gender)
	set("dob", req.DOB)
	set("address", req.Address)
	set("location", req.Location)
	set("mobile", req.Mobile)
	set("qualification", req.Qualification)
	set("occupation", req.Occupation)
	set("monthlyIncome", req.MonthlyIncome)
	set("height", req.Height)
	set("weight", req.Weight)
	set("aboutMe", req.About)
	set("religion", req.Religion)
	set("caste", req.Caste)
	set("otherCaste", req.OtherCaste)
	set("fatherName", req.FatherName)
	set("fatherOccupation", req.FatherOccupation)
	set("fatherNative", req.FatherNative)
	set("motherName", req.MotherName)
	set("motherOccupation", req.MotherOccupation)
	set("motherNative", req.MotherNative)
	set("siblings", req.Siblings)
	if req.Age > 0 {
		updates["age"] = req.Age
	}
	return updates
}
