package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedProperty is a (user, property) bookmark, unique per pair. The
// unique index is the correctness mechanism for concurrent toggles.
type SavedProperty struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_property" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_property" json:"property_id"`
	Property   Property  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SavedAt    time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

// RecentlyViewed is a (user, property) pair refreshed on every view.
// Retention is unbounded; readers truncate to the most recent N.
type RecentlyViewed struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_viewed_user_property" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_viewed_user_property" json:"property_id"`
	Property   Property  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ViewedAt   time.Time `gorm:"index" json:"viewed_at"`
}

// ModerationDecision is the audit trail of admin approve/reject actions.
type ModerationDecision struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null" json:"reviewer_id"`
	Action     string    `gorm:"not null" json:"action"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
