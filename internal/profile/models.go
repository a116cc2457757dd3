// internal/profile/models.go

package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile moderation states
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusReported = "Reported"
)

// Membership tiers
const (
	TypeFree    = "Free"
	TypePremium = "Premium"
)

const (
	UserTypeOrdinary = "user"
	UserTypeAdmin    = "admin"
)

// Profile is the full matrimony profile document
type Profile struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Mobile        string               `bson:"mobile" json:"mobile"`
	DOB           string               `bson:"dob,omitempty" json:"dob,omitempty"`
	Gender        string               `bson:"gender" json:"gender"`
	Age           int                  `bson:"age" json:"age"`
	MemberID      string               `bson:"memberid,omitempty" json:"memberid,omitempty"`
	Address       string               `bson:"address,omitempty" json:"address,omitempty"`
	Location      string               `bson:"location,omitempty" json:"location,omitempty"`
	Religion      string               `bson:"religion,omitempty" json:"religion,omitempty"`
	Caste         string               `bson:"caste,omitempty" json:"caste,omitempty"`
	OtherCaste    string               `bson:"otherCaste,omitempty" json:"other_caste,omitempty"`
	About         string               `bson:"aboutMe,omitempty" json:"about_me,omitempty"`
	Height        string               `bson:"height,omitempty" json:"height,omitempty"`
	Weight        string               `bson:"weight,omitempty" json:"weight,omitempty"`
	Qualification string               `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Occupation    string               `bson:"occupation,omitempty" json:"occupation,omitempty"`
	MonthlyIncome string               `bson:"monthlyIncome,omitempty" json:"monthly_income,omitempty"`
	ProfilePhoto  string               `bson:"profilePhoto,omitempty" json:"profile_photo,omitempty"`

	// Family details
	FatherName       string `bson:"fatherName,omitempty" json:"father_name,omitempty"`
	FatherOccupation string `bson:"fatherOccupation,omitempty" json:"father_occupation,omitempty"`
	FatherNative     string `bson:"fatherNative,omitempty" json:"father_native,omitempty"`
	MotherName       string `bson:"motherName,omitempty" json:"mother_name,omitempty"`
	MotherOccupation string `bson:"motherOccupation,omitempty" json:"mother_occupation,omitempty"`
	MotherNative     string `bson:"motherNative,omitempty" json:"mother_native,omitempty"`
	Siblings         string `bson:"siblings,omitempty" json:"siblings,omitempty"`

	UserType      string               `bson:"userType" json:"user_type"`
	ProfileStatus string               `bson:"profileStatus" json:"profile_status"`
	ProfileType   string               `bson:"profileType" json:"profile_type"`
	IsActive      bool                 `bson:"isActive" json:"is_active"`
	Likes         []primitive.ObjectID `bson:"likes,omitempty" json:"-"`
	CreatedAt     time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updated_at"`
}

// GalleryPhoto is one photo in a user's gallery
type GalleryPhoto struct {
	URL       string `bson:"url" json:"url"`
	IsProfile bool   `bson:"isProfile" json:"is_profile"`
}

// Gallery is a user's photo gallery document
type Gallery struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"user_id"`
	Photos     []GalleryPhoto     `bson:"photos" json:"photos"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploaded_at"`
}

// UpdateProfileRequest carries the self-service editable fields. Member
// ID, user type, status and tier are never client-writable.
type UpdateProfileRequest struct {
	Name          string `json:"name" validate:"omitempty,min=2,max=100"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female"`
	DOB           string `json:"dob"`
	Age           int    `json:"age" validate:"omitempty,min=18,max=100"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	Mobile        string `json:"mobile" validate:"omitempty,min=10,max=15"`
	Qualification string `json:"qualification"`
	Occupation    string `json:"occupation"`
	MonthlyIncome string `json:"monthly_income"`
	Height        string `json:"height"`
	Weight        string `json:"weight"`
	About         string `json:"about_me"`
	Religion      string `json:"religion"`
	Caste         string `json:"caste"`
	OtherCaste    string `json:"other_caste"`

	FatherName       string `json:"father_name"`
	FatherOccupation string `json:"father_occupation"`
	FatherNative     string `json:"father_native"`
	MotherName       string `json:"mother_name"`
	MotherOccupation string `json:"mother_occupation"`
	MotherNative     string `json:"mother_native"`
	Siblings         string `json:"siblings"`
}

// AdminUpdateRequest extends the self-service fields with moderation
// controls available only to administrators.
type AdminUpdateRequest struct {
	UpdateProfileRequest
	ProfileStatus string `json:"profile_status" validate:"omitempty,oneof=Pending Verified Reported"`
	ProfileType   string `json:"profile_type" validate:"omitempty,oneof=Free Premium"`
	IsActive      *bool  `json:"is_active"`
}

// ListFilters narrows the browse pool
type ListFilters struct {
	Age      int
	Location string
	Religion string
	Caste    string
}
