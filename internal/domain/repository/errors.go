package repository

import (
	"errors"
	"fmt"

	"runboard/internal/common"

	"gorm.io/gorm"
)

// translate maps gorm/driver failures onto the shared error taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	if common.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, common.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
