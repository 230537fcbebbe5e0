package usererrors

import (
	"net/http"

	"go-teamhub/internal/shared/apperror"
)

var ErrUserNotFound = apperror.New(apperror.CodeNotFound, "User not found", http.StatusNotFound)

// ErrInvalidUserID is returned for ids that are not UUIDs, before any
// query is made.
var ErrInvalidUserID = apperror.New(apperror.CodeInvalidInput, "Invalid user ID", http.StatusBadRequest)
