package repositories

import (
	"time"

	"saudapakka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository persists the per-user bookmark and view history
// pairs. Both tables carry a unique (user, property) index; concurrent
// writes resolve through it rather than through application locks.
type InteractionRepository interface {
	// ToggleSave creates the bookmark if absent and deletes it if
	// present. It returns true when the property ended up saved.
	ToggleSave(userID, propertyID uuid.UUID) (bool, error)

	// RecordView upserts the (user, property) row with viewed_at=now.
	RecordView(userID, propertyID uuid.UUID) error

	// SavedProperties returns the user's bookmarked listings.
	SavedProperties(userID uuid.UUID) ([]models.Property, error)

	// RecentProperties returns the user's most recently viewed
	// listings, newest first, at most limit entries.
	RecentProperties(userID uuid.UUID, limit int) ([]models.Property, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new instance of InteractionRepository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) ToggleSave(userID, propertyID uuid.UUID) (bool, error) {
	result := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.SavedProperty{})
	if result.Error != nil {
		return false, ErrDatabaseOperation
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	saved := models.SavedProperty{UserID: userID, PropertyID: propertyID}
	if err := r.db.Create(&saved).Error; err != nil {
		// A concurrent toggle created the row between our delete and
		// create; treat it as already saved.
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, ErrDatabaseOperation
	}
	return true, nil
}

func (r *interactionRepository) RecordView(userID, propertyID uuid.UUID) error {
	view := models.RecentlyViewed{
		UserID:     userID,
		PropertyID: propertyID,
		ViewedAt:   time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
	}).Create(&view).Error
	if err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *interactionRepository) SavedProperties(userID uuid.UUID) ([]models.Property, error) {
	var saved []models.SavedProperty
	err := r.db.Where("user_id = ?", userID).
		Order("saved_at DESC").
		Preload("Property").
		Preload("Property.Owner").
		Preload("Property.Images").
		Find(&saved).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	props := make([]models.Property, 0, len(saved))
	for _, s := range saved {
		props = append(props, s.Property)
	}
	return props, nil
}

func (r *interactionRepository) RecentProperties(userID uuid.UUID, limit int) ([]models.Property, error) {
	var recent []models.RecentlyViewed
	err := r.db.Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Preload("Property").
		Preload("Property.Owner").
		Preload("Property.Images").
		Find(&recent).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	props := make([]models.Property, 0, len(recent))
	for _, v := range recent {
		props = append(props, v.Property)
	}
	return props, nil
}
