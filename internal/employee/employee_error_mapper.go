package employee

import (
	"errors"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || database.IsForeignKeyViolation(err) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if database.IsCheckViolation(err) {
		return employeeerrors.ErrAvailableExceedsTotal
	}

	return apperror.Storage(err)
}
