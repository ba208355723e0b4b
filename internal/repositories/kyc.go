package repositories

import (
	"errors"

	"saudapakka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrKycNotFound = errors.New("kyc record not found")

// KycRepository persists KYC submissions and broker profiles.
type KycRepository interface {
	// GetOrCreate returns the user's KYC record, creating an empty
	// PENDING one when absent.
	GetOrCreate(userID uuid.UUID) (*models.KycVerification, error)

	// GetByUserID returns the user's KYC record or ErrKycNotFound.
	GetByUserID(userID uuid.UUID) (*models.KycVerification, error)

	Update(kyc *models.KycVerification) error

	// EnsureBrokerProfile creates an empty broker profile if the user
	// does not already have one.
	EnsureBrokerProfile(userID uuid.UUID) (*models.BrokerProfile, error)
}

type kycRepository struct {
	db *gorm.DB
}

// NewKycRepository creates a new instance of KycRepository
func NewKycRepository(db *gorm.DB) KycRepository {
	return &kycRepository{db: db}
}

func (r *kycRepository) GetOrCreate(userID uuid.UUID) (*models.KycVerification, error) {
	var kyc models.KycVerification
	err := r.db.Where("user_id = ?", userID).First(&kyc).Error
	if err == nil {
		return &kyc, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, ErrDatabaseOperation
	}

	kyc = models.KycVerification{UserID: userID, Status: models.KycStatusPending}
	if err := r.db.Create(&kyc).Error; err != nil {
		if isUniqueViolation(err) {
			if err := r.db.Where("user_id = ?", userID).First(&kyc).Error; err != nil {
				return nil, ErrDatabaseOperation
			}
			return &kyc, nil
		}
		return nil, ErrDatabaseOperation
	}
	return &kyc, nil
}

func (r *kycRepository) GetByUserID(userID uuid.UUID) (*models.KycVerification, error) {
	var kyc models.KycVerification
	err := r.db.Where("user_id = ?", userID).First(&kyc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrKycNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &kyc, nil
}

func (r *kycRepository) Update(kyc *models.KycVerification) error {
	if err := r.db.Save(kyc).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *kycRepository) EnsureBrokerProfile(userID uuid.UUID) (*models.BrokerProfile, error) {
	var profile models.BrokerProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, ErrDatabaseOperation
	}

	profile = models.BrokerProfile{UserID: userID, ServicesOffered: models.JSON{}}
	if err := r.db.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
				return nil, ErrDatabaseOperation
			}
			return &profile, nil
		}
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}
