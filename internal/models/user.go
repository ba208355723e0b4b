package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account on the marketplace. Regular users log in with an
// email OTP; Password is set only for staff accounts seeded for the
// admin panel.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Password    string    `gorm:"default:''" json:"-"`

	// Capability flags. Seller/broker are granted through the role
	// upgrade flow after KYC, never set directly by clients.
	IsActiveSeller bool `gorm:"default:false" json:"is_active_seller"`
	IsActiveBroker bool `gorm:"default:false" json:"is_active_broker"`

	// Staff can see every listing; only superusers may moderate.
	IsStaff     bool `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`

	// IsActive is the block/unblock flag toggled from the admin panel.
	IsActive bool `gorm:"default:true" json:"is_active"`

	// Transient login OTP, cleared after a successful verify.
	OTP          string     `json:"-"`
	OTPCreatedAt *time.Time `json:"-"`

	TokenVersion int `gorm:"default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
