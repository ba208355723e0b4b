package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property types
const (
	PropertyTypeFlat         = "FLAT"
	PropertyTypeLand         = "LAND"
	PropertyTypeServicedApt  = "SERVICED_APT"
	PropertyTypeBuilderFloor = "BUILDER_FLOOR"
	PropertyTypeStudio       = "STUDIO"
	PropertyTypeVilla        = "VILLA"
	PropertyTypeFarmhouse    = "FARMHOUSE"
	PropertyTypeOther        = "OTHER"
)

// Listing types
const (
	ListingTypeSell      = "SELL"
	ListingTypeRent      = "RENT"
	ListingTypeNewLaunch = "NEW_LAUNCH"
)

// Verification statuses
const (
	VerificationPending  = "PENDING"
	VerificationVerified = "VERIFIED"
	VerificationRejected = "REJECTED"
)

// PropertyTypes lists the accepted property_type values.
var PropertyTypes = []string{
	PropertyTypeFlat, PropertyTypeLand, PropertyTypeServicedApt,
	PropertyTypeBuilderFloor, PropertyTypeStudio, PropertyTypeVilla,
	PropertyTypeFarmhouse, PropertyTypeOther,
}

// Property is a listing. Owner is set at creation and never reassigned;
// verification_status is mutated only through the moderation service.
type Property struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Title        string  `gorm:"not null" json:"title"`
	Description  string  `json:"description"`
	Price        float64 `gorm:"type:numeric(15,2)" json:"price"`
	PropertyType string  `gorm:"not null" json:"property_type"`
	ListingType  string  `gorm:"not null" json:"listing_type"`

	AddressLine string   `json:"address_line"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	// Optional supporting documents (stored as file references).
	// Presence is surfaced to buyers as boolean trust indicators; the
	// raw references are serialized only for the owner and staff.
	Doc712          string `json:"-"`
	DocMojani       string `json:"-"`
	DocNAOrder      string `json:"-"`
	DocLayoutOrder  string `json:"-"`
	DocLayoutCopy   string `json:"-"`
	DocBuildingPerm string `json:"-"`
	DocFloorPlan    string `json:"-"`

	VerificationStatus string `gorm:"default:'PENDING';index" json:"verification_status"`
	RejectionReason    string `json:"rejection_reason,omitempty"`

	Images []PropertyImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PropertyImage is a photo attached to a listing.
type PropertyImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	URL         string    `gorm:"not null" json:"image"`
	IsThumbnail bool      `gorm:"default:false" json:"is_thumbnail"`
}

// ValidPropertyType reports whether t is one of the accepted variants.
func ValidPropertyType(t string) bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidListingType reports whether t is SELL, RENT or NEW_LAUNCH.
func ValidListingType(t string) bool {
	return t == ListingTypeSell || t == ListingTypeRent || t == ListingTypeNewLaunch
}
