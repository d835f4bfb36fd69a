package persistence

import (
	"errors"
	"strings"

	"github.com/boekhoud/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps low-level database errors onto domain errors.
// Duplicate keys and serialization failures both surface as a
// concurrency conflict so the caller can retry the whole transaction.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConcurrencyConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "database is locked") {
		return shared.ErrConcurrencyConflict
	}
	return err
}
