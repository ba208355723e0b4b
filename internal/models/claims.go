package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims is the JWT payload issued after OTP verification (or admin
// password login). Capability flags are snapshotted at issue time; the
// token version check invalidates stale tokens after logout.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	IsActiveSeller bool      `json:"is_active_seller"`
	IsActiveBroker bool      `json:"is_active_broker"`
	IsStaff        bool      `json:"is_staff"`
	IsSuperuser    bool      `json:"is_superuser"`
	TokenVersion   int       `json:"token_version"`
}

// Principal is the actor behind a request, passed explicitly into every
// service call. The zero value is an anonymous guest.
type Principal struct {
	ID             uuid.UUID
	Email          string
	Authenticated  bool
	IsActiveSeller bool
	IsActiveBroker bool
	IsStaff        bool
	IsSuperuser    bool
}

// AnonymousPrincipal returns the guest actor.
func AnonymousPrincipal() Principal {
	return Principal{}
}

// PrincipalFromClaims builds the request actor from validated claims.
func PrincipalFromClaims(c *UserClaims) Principal {
	return Principal{
		ID:             c.UserID,
		Email:          c.Email,
		Authenticated:  true,
		IsActiveSeller: c.IsActiveSeller,
		IsActiveBroker: c.IsActiveBroker,
		IsStaff:        c.IsStaff,
		IsSuperuser:    c.IsSuperuser,
	}
}

// PrincipalFromUser builds the actor for a freshly loaded user record.
func PrincipalFromUser(u *User) Principal {
	return Principal{
		ID:             u.ID,
		Email:          u.Email,
		Authenticated:  true,
		IsActiveSeller: u.IsActiveSeller,
		IsActiveBroker: u.IsActiveBroker,
		IsStaff:        u.IsStaff,
		IsSuperuser:    u.IsSuperuser,
	}
}
