// Package repository translates between stored rows and transfer objects.
package repository

import (
	"errors"

	"roster/models"

	"gorm.io/gorm"
)

// notFound maps gorm's record-not-found onto the domain NotFoundError and
// passes any other error through.
func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFound(resource, id)
	}
	return err
}
