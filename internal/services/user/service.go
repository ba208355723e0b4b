// Package user handles profile reads/updates and the role upgrade
// transition from verified KYC to seller or broker capability.
package user

import (
	"context"
	"errors"
	"fmt"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
)

// Upgrade roles
const (
	RoleSeller = "SELLER"
	RoleBroker = "BROKER"
)

// Service errors
var (
	ErrKycRequired = errors.New("KYC not verified. Please complete KYC first.")
	ErrInvalidRole = errors.New("invalid role. Choose 'SELLER' or 'BROKER'")
)

// Profile is the caller's own account view, including KYC status.
type Profile struct {
	models.User
	KycStatus string `json:"kyc_status"`
}

// ProfilePatch updates name and phone; nil fields are untouched.
type ProfilePatch struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

type Service interface {
	Profile(ctx context.Context, principal models.Principal) (*Profile, error)
	UpdateProfile(ctx context.Context, principal models.Principal, patch ProfilePatch) (*Profile, error)

	// UpgradeRole grants the seller or broker capability. It is the
	// only call site that mutates the role flags, and it requires a
	// VERIFIED KYC record.
	UpgradeRole(ctx context.Context, principal models.Principal, role string) (*models.User, error)

	// SearchProfiles is the public broker/seller directory.
	SearchProfiles(ctx context.Context, query, role string) ([]models.User, error)
}

type service struct {
	users repositories.UserRepository
	kyc   repositories.KycRepository
}

// NewService creates a new user service
func NewService(users repositories.UserRepository, kyc repositories.KycRepository) Service {
	if users == nil {
		panic("user repo is required")
	}
	if kyc == nil {
		panic("kyc repo is required")
	}
	return &service{users: users, kyc: kyc}
}

func (s *service) Profile(ctx context.Context, principal models.Principal) (*Profile, error) {
	user, err := s.users.GetByID(principal.ID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *user, KycStatus: models.KycStatusNotSubmitted}
	if record, err := s.kyc.GetByUserID(principal.ID); err == nil {
		profile.KycStatus = record.Status
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, principal models.Principal, patch ProfilePatch) (*Profile, error) {
	user, err := s.users.GetByID(principal.ID)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Profile(ctx, principal)
}

func (s *service) UpgradeRole(ctx context.Context, principal models.Principal, role string) (*models.User, error) {
	if role != RoleSeller && role != RoleBroker {
		return nil, ErrInvalidRole
	}

	record, err := s.kyc.GetByUserID(principal.ID)
	if err != nil {
		if err == repositories.ErrKycNotFound {
			return nil, ErrKycRequired
		}
		return nil, fmt.Errorf("failed to load kyc record: %w", err)
	}
	if record.Status != models.KycStatusVerified {
		return nil, ErrKycRequired
	}

	user, err := s.users.GetByID(principal.ID)
	if err != nil {
		return nil, err
	}

	switch role {
	case RoleSeller:
		user.IsActiveSeller = true
	case RoleBroker:
		user.IsActiveBroker = true
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	if role == RoleBroker {
		if _, err := s.kyc.EnsureBrokerProfile(user.ID); err != nil {
			return nil, fmt.Errorf("failed to create broker profile: %w", err)
		}
	}
	return user, nil
}

func (s *service) SearchProfiles(ctx context.Context, query, role string) ([]models.User, error) {
	if role == "" {
		role = RoleBroker
	}
	return s.users.Search(query, role)
}
