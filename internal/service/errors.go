package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// mapFieldError converts Field Mapper failures into 400s: a field-scoped
// message when a field failed validation, a generic one when the payload
// held nothing updatable.
func mapFieldError(err error) error {
	var fieldErr *fieldmap.FieldError
	if errors.As(err, &fieldErr) {
		return apperror.BadRequest(fieldErr.Error())
	}
	if errors.Is(err, fieldmap.ErrNoUpdatableFields) {
		return apperror.BadRequest("Нет поддерживаемых полей для обновления")
	}
	return err
}
