package repositories

import (
	"errors"
	"time"

	"saudapakka/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// GetOrCreateByEmail returns the user for an email, creating a fresh
	// account when none exists. Used by the OTP login flow.
	GetOrCreateByEmail(email string) (*models.User, bool, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// Delete removes a user from the database
	Delete(id uuid.UUID) error

	// IncrementTokenVersion increments the user's token version
	IncrementTokenVersion(userID uuid.UUID) error

	// List retrieves users, optionally filtered by role flag
	// ("SELLER", "BROKER" or "ALL"), with pagination.
	List(roleFilter string, offset, limit int) ([]models.User, int64, error)

	// Search finds public seller/broker profiles by name substring or
	// exact id.
	Search(query, roleFilter string) ([]models.User, error)

	// SetActive flips the admin block flag.
	SetActive(id uuid.UUID, active bool) error

	// Stats counters for the admin dashboard.
	CountAll() (int64, error)
	CountSellers() (int64, error)
	CountBrokers() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}
