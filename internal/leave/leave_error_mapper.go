package leave

import (
	"errors"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

// mapRepositoryError translates storage failures. notFound is the sentinel
// for the record the caller was looking up.
func mapRepositoryError(err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	if database.IsForeignKeyViolation(err) {
		return leaveerrors.ErrEmployeeNotFound
	}

	if database.IsCheckViolation(err) {
		return apperror.Validation("Leave would break the employee balance")
	}

	return apperror.Storage(err)
}
