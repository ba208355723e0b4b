// Package kyc handles identity document submission. The actual document
// check is delegated to a Provider so a real verifier can replace the
// default auto-approve stub without touching the workflow.
package kyc

import (
	"context"
	"fmt"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
)

// SubmitInput is the identity document payload.
type SubmitInput struct {
	AadhaarNumber  string      `json:"aadhaar_number"`
	PanNumber      string      `json:"pan_number"`
	DigilockerJSON models.JSON `json:"digilocker_json"`
}

// Provider decides the verification outcome for a submission.
type Provider interface {
	Verify(ctx context.Context, kyc *models.KycVerification) (string, error)
}

// AutoApproveProvider marks every submission VERIFIED without any real
// validation. This mirrors the current production behavior; swap it for
// a real provider when one exists.
type AutoApproveProvider struct{}

func (AutoApproveProvider) Verify(ctx context.Context, kyc *models.KycVerification) (string, error) {
	return models.KycStatusVerified, nil
}

type Service interface {
	// Submit upserts the caller's KYC record and runs the provider.
	Submit(ctx context.Context, principal models.Principal, input SubmitInput) (*models.KycVerification, error)

	// Status returns the caller's KYC record.
	Status(ctx context.Context, principal models.Principal) (*models.KycVerification, error)
}

type service struct {
	repo     repositories.KycRepository
	provider Provider
}

// NewService creates a new KYC service. A nil provider falls back to
// the auto-approve stub.
func NewService(repo repositories.KycRepository, provider Provider) Service {
	if repo == nil {
		panic("kyc repo is required")
	}
	if provider == nil {
		provider = AutoApproveProvider{}
	}
	return &service{repo: repo, provider: provider}
}

func (s *service) Submit(ctx context.Context, principal models.Principal, input SubmitInput) (*models.KycVerification, error) {
	kyc, err := s.repo.GetOrCreate(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load kyc record: %w", err)
	}

	kyc.AadhaarNumber = input.AadhaarNumber
	kyc.PanNumber = input.PanNumber
	if input.DigilockerJSON != nil {
		kyc.DigilockerJSON = input.DigilockerJSON
	}

	status, err := s.provider.Verify(ctx, kyc)
	if err != nil {
		return nil, fmt.Errorf("verification provider failed: %w", err)
	}
	kyc.Status = status

	if err := s.repo.Update(kyc); err != nil {
		return nil, fmt.Errorf("failed to persist kyc record: %w", err)
	}
	return kyc, nil
}

func (s *service) Status(ctx context.Context, principal models.Principal) (*models.KycVerification, error) {
	return s.repo.GetByUserID(principal.ID)
}
