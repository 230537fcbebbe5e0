package attendanceerrors

import (
	"net/http"

	"go-teamhub/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrForbiddenUser = apperror.New(
		apperror.CodeForbidden,
		"you can only access your own attendance",
		http.StatusForbidden,
	)
	ErrUnknownJob = apperror.New(
		apperror.CodeNotFound,
		"unknown attendance job",
		http.StatusNotFound,
	)
)
