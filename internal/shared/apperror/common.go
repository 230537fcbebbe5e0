package apperror

import "net/http"

var (
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)

	ErrTooManyRequests = New(CodeTooManyRequests, "Too many requests, slow down", http.StatusTooManyRequests)
)
