package property

import (
	"saudapakka/internal/models"
	"saudapakka/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// visibilityRule is the resolved access tier for a principal.
type visibilityRule int

const (
	// seeAll: staff (not necessarily superuser) see every listing.
	seeAll visibilityRule = iota
	// seeOwnOrVerified: authenticated users see VERIFIED listings plus
	// everything they own, whatever its status.
	seeOwnOrVerified
	// seeVerifiedOnly: guests see VERIFIED listings only.
	seeVerifiedOnly
)

// ruleFor resolves the visibility tier, first match wins.
func ruleFor(p models.Principal) visibilityRule {
	switch {
	case p.IsStaff:
		return seeAll
	case p.Authenticated:
		return seeOwnOrVerified
	default:
		return seeVerifiedOnly
	}
}

// VisibleTo builds the role-aware filter predicate for list queries.
// The overlapping owner/verified clauses collapse to set semantics, and
// results come back newest first unless a later ordering scope overrides
// it.
func VisibleTo(p models.Principal) repositories.Scope {
	rule := ruleFor(p)
	owner := p.ID
	return func(db *gorm.DB) *gorm.DB {
		switch rule {
		case seeAll:
			return db
		case seeOwnOrVerified:
			return db.Where(
				db.Session(&gorm.Session{NewDB: true}).
					Where("verification_status = ?", models.VerificationVerified).
					Or("owner_id = ?", owner),
			).Distinct()
		default:
			return db.Where("verification_status = ?", models.VerificationVerified)
		}
	}
}

// CanView reports whether a single listing is visible to the principal,
// mirroring the list predicate for detail reads.
func CanView(p models.Principal, prop *models.Property) bool {
	switch ruleFor(p) {
	case seeAll:
		return true
	case seeOwnOrVerified:
		return prop.VerificationStatus == models.VerificationVerified || prop.OwnerID == p.ID
	default:
		return prop.VerificationStatus == models.VerificationVerified
	}
}

// WithStatus filters by verification status.
func WithStatus(status string) repositories.Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("verification_status = ?", status)
	}
}

// OwnedBy filters to a single owner's listings.
func OwnedBy(owner uuid.UUID) repositories.Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", owner)
	}
}

// NewestFirst is the default result ordering, a hard contract for every
// visibility tier.
func NewestFirst() repositories.Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}
