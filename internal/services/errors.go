package services

import (
	"errors"

	"curtain_store/internal/apperr"

	"gorm.io/gorm"
)

// notFound turns gorm's missing-row error into a domain NotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return err
}
