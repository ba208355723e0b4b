package models

import (
	"time"

	"github.com/google/uuid"
)

// KYC statuses
const (
	KycStatusPending      = "PENDING"
	KycStatusVerified     = "VERIFIED"
	KycStatusRejected     = "REJECTED"
	KycStatusNotSubmitted = "NOT_SUBMITTED"
)

// KycVerification holds the identity documents a user submitted, one
// record per user.
type KycVerification struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AadhaarNumber  string    `json:"aadhaar_number"`
	PanNumber      string    `json:"pan_number"`
	DigilockerJSON JSON      `gorm:"type:jsonb" json:"digilocker_json"`
	Status         string    `gorm:"default:'PENDING'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BrokerProfile is created empty when a user upgrades to broker.
type BrokerProfile struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ServicesOffered JSON      `gorm:"type:jsonb" json:"services_offered"`
	ExperienceYears int       `gorm:"default:0" json:"experience_years"`
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
