package employeeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrTotalLeavesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Total leaves is required",
		http.StatusBadRequest,
	)
	ErrNegativeLeaves = apperror.New(
		apperror.CodeInvalidInput,
		"Leave values cannot be negative",
		http.StatusBadRequest,
	)
	ErrAvailableExceedsTotal = apperror.New(
		apperror.CodeInvalidInput,
		"Available leaves cannot exceed total leaves",
		http.StatusBadRequest,
	)
	ErrTotalBelowUsed = apperror.New(
		apperror.CodeInvalidInput,
		"Total leaves cannot be lower than leaves already used",
		http.StatusBadRequest,
	)
)
