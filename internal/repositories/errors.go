package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err came from a unique constraint.
// Relies on gorm's error translation being enabled on the connection.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
