package repositories

import (
	"errors"

	"saudapakka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

// Scope is a composable gorm query fragment. The property service builds
// visibility and filter scopes and hands them to the repository, so all
// predicate logic stays in one place.
type Scope = func(*gorm.DB) *gorm.DB

// PropertyRepository defines the interface for listing persistence.
type PropertyRepository interface {
	Create(p *models.Property) error

	// GetByID loads a listing with its images.
	GetByID(id uuid.UUID) (*models.Property, error)

	// Update persists every field of p and bumps updated_at.
	Update(p *models.Property) error

	Delete(id uuid.UUID) error

	// List returns listings matching all scopes.
	List(scopes ...Scope) ([]models.Property, error)

	// ListPaginated additionally returns the unpaginated total.
	ListPaginated(offset, limit int, scopes ...Scope) ([]models.Property, int64, error)

	// CountByStatus returns the number of listings per verification status.
	CountByStatus() (map[string]int64, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new instance of PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(p *models.Property) error {
	if err := r.db.Create(p).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) GetByID(id uuid.UUID) (*models.Property, error) {
	var p models.Property
	err := r.db.Preload("Owner").Preload("Images").First(&p, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &p, nil
}

func (r *propertyRepository) Update(p *models.Property) error {
	if err := r.db.Save(p).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) List(scopes ...Scope) ([]models.Property, error) {
	var props []models.Property
	if err := r.db.Model(&models.Property{}).Scopes(scopes...).Preload("Owner").Preload("Images").Find(&props).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return props, nil
}

func (r *propertyRepository) ListPaginated(offset, limit int, scopes ...Scope) ([]models.Property, int64, error) {
	query := r.db.Model(&models.Property{}).Scopes(scopes...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var props []models.Property
	if err := query.Preload("Owner").Preload("Images").Offset(offset).Limit(limit).Find(&props).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return props, total, nil
}

func (r *propertyRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		VerificationStatus string
		N                  int64
	}
	var rows []row
	err := r.db.Model(&models.Property{}).
		Select("verification_status, COUNT(*) as n").
		Group("verification_status").
		Scan(&rows).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	counts := map[string]int64{
		models.VerificationPending:  0,
		models.VerificationVerified: 0,
		models.VerificationRejected: 0,
	}
	for _, r := range rows {
		counts[r.VerificationStatus] = r.N
	}
	return counts, nil
}
