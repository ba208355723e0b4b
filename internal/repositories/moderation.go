package repositories

import (
	"saudapakka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationRepository is the audit trail of admin decisions.
type ModerationRepository interface {
	AppendDecision(d *models.ModerationDecision) error
	DecisionsForProperty(propertyID uuid.UUID) ([]models.ModerationDecision, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new instance of ModerationRepository
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) AppendDecision(d *models.ModerationDecision) error {
	if err := r.db.Create(d).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *moderationRepository) DecisionsForProperty(propertyID uuid.UUID) ([]models.ModerationDecision, error) {
	var decisions []models.ModerationDecision
	err := r.db.Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&decisions).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return decisions, nil
}
