// Package auth implements passwordless OTP login for regular users,
// password login for seeded staff accounts, and JWT issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"saudapakka/internal/mailer"
	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
	"saudapakka/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// otpValidity is how long a login code stays usable after issuance.
const otpValidity = 5 * time.Minute

// Service errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrStaffOnly          = errors.New("staff credentials required")
)

// TokenPair is an access/refresh token couple.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Service interface {
	// RequestOTP creates the account on first contact and mails a
	// 6-digit login code.
	RequestOTP(ctx context.Context, email string) error

	// VerifyOTP checks the code, clears it and issues tokens.
	VerifyOTP(ctx context.Context, email, code string) (*models.User, *TokenPair, error)

	// AdminLogin is password-based and restricted to staff accounts.
	AdminLogin(ctx context.Context, email, password string) (*models.User, *TokenPair, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout bumps the token version, invalidating issued tokens.
	Logout(ctx context.Context, userID uuid.UUID) error

	// GetUserTokenVersion is used by the auth middleware.
	GetUserTokenVersion(userID uuid.UUID) (int, error)

	GetUserByID(userID uuid.UUID) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	mail     mailer.Mailer
}

// NewService creates a new auth service
func NewService(userRepo repositories.UserRepository, mail mailer.Mailer) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if mail == nil {
		panic("mailer is required")
	}
	return &service{userRepo: userRepo, mail: mail}
}

func (s *service) RequestOTP(ctx context.Context, email string) error {
	user, created, err := s.userRepo.GetOrCreateByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	if created {
		log.Printf("Created account for %s on first OTP request", email)
	}
	if !user.IsActive {
		return ErrAccountBlocked
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	user.OTP = code
	user.OTPCreatedAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf("Your OTP is: %s\nIt expires in 5 minutes.", code)
	if err := s.mail.Send(email, "Your SaudaPakka Login OTP", body); err != nil {
		return fmt.Errorf("failed to send OTP mail: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrAccountBlocked
	}

	if user.OTP == "" || user.OTP != code {
		return nil, nil, ErrInvalidOTP
	}
	if user.OTPCreatedAt == nil || time.Since(*user.OTPCreatedAt) > otpValidity {
		return nil, nil, ErrOTPExpired
	}

	// One-time use: clear the code before issuing tokens.
	user.OTP = ""
	user.OTPCreatedAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, fmt.Errorf("failed to clear OTP: %w", err)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) AdminLogin(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsStaff && !user.IsSuperuser {
		return nil, nil, ErrStaffOnly
	}
	if !user.IsActive {
		return nil, nil, ErrAccountBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Admin login failed: incorrect password for %s", email)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("token version mismatch")
	}

	return s.issueTokens(user)
}

func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) GetUserTokenVersion(userID uuid.UUID) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) GetUserByID(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *service) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:         user.ID,
		Email:          user.Email,
		IsActiveSeller: user.IsActiveSeller,
		IsActiveBroker: user.IsActiveBroker,
		IsStaff:        user.IsStaff,
		IsSuperuser:    user.IsSuperuser,
		TokenVersion:   user.TokenVersion,
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, errors.New("error generating tokens")
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
