package repositories

import (
	"context"
	"log"
	"time"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrEmailTaken
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	// Try cache first
	key := r.cache.GenerateKey("user", "id", id)
	var cached models.User
	if hit, err := r.cache.Get(context.Background(), key, &cached); err == nil && hit {
		return &cached, nil
	}

	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		log.Printf("Failed to cache user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	key := r.cache.GenerateKey("user", "email", email)
	var cached models.User
	if hit, err := r.cache.Get(context.Background(), key, &cached); err == nil && hit {
		return &cached, nil
	}

	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		log.Printf("Failed to cache user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) GetOrCreateByEmail(email string) (*models.User, bool, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, ErrDatabaseOperation
	}

	user = models.User{Email: email}
	if err := r.db.Create(&user).Error; err != nil {
		// Lost a creation race; the row exists now.
		if isUniqueViolation(err) {
			if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
				return nil, false, ErrDatabaseOperation
			}
			return &user, false, nil
		}
		return nil, false, ErrDatabaseOperation
	}
	return &user, true, nil
}

func (r *userRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}

	if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
		log.Printf("Warning: Failed to invalidate user cache: %v", err)
	}
	return nil
}

func (r *userRepository) Delete(id uuid.UUID) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}

	result := r.db.Select(clause.Associations).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
		log.Printf("Warning: Failed to invalidate user cache: %v", err)
	}
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uuid.UUID) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		return ErrDatabaseOperation
	}

	user, err := r.GetByID(userID)
	if err == nil {
		if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
			log.Printf("Warning: Failed to invalidate user cache: %v", err)
		}
	}
	return nil
}

func (r *userRepository) List(roleFilter string, offset, limit int) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	switch roleFilter {
	case "SELLER":
		query = query.Where("is_active_seller = ?", true)
	case "BROKER":
		query = query.Where("is_active_broker = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return users, total, nil
}

func (r *userRepository) Search(query, roleFilter string) ([]models.User, error) {
	q := r.db.Model(&models.User{})
	switch roleFilter {
	case "SELLER":
		q = q.Where("is_active_seller = ?", true)
	default:
		q = q.Where("is_active_broker = ?", true)
	}

	if query != "" {
		if id, err := uuid.Parse(query); err == nil {
			q = q.Where("id = ?", id)
		} else {
			q = q.Where("full_name ILIKE ?", "%"+query+"%")
		}
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return users, nil
}

func (r *userRepository) SetActive(id uuid.UUID, active bool) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	user, err := r.GetByID(id)
	if err == nil {
		if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
			log.Printf("Warning: Failed to invalidate user cache: %v", err)
		}
	}
	return nil
}

func (r *userRepository) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *userRepository) CountSellers() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("is_active_seller = ?", true).Count(&n).Error
	return n, err
}

func (r *userRepository) CountBrokers() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("is_active_broker = ?", true).Count(&n).Error
	return n, err
}

func (r *userRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
