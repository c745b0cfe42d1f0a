package importererrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"No file uploaded",
		http.StatusBadRequest,
	)
	ErrUnsupportedFile = apperror.New(
		apperror.CodeInvalidInput,
		"Only CSV and Excel files (.csv, .xlsx, .xls) are allowed",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File is too large",
		http.StatusRequestEntityTooLarge,
	)
	ErrUnreadableFile = apperror.New(
		apperror.CodeInvalidInput,
		"Could not read file",
		http.StatusBadRequest,
	)
	ErrNoRows = apperror.New(
		apperror.CodeInvalidInput,
		"No valid employee data found in file",
		http.StatusBadRequest,
	)
	ErrTooManyRows = apperror.New(
		apperror.CodeInvalidInput,
		"File has too many rows",
		http.StatusBadRequest,
	)
)
