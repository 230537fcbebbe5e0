package walleterrors

import (
	"net/http"

	"go-teamhub/internal/shared/apperror"
)

var (
	ErrWalletNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary details not found",
		http.StatusNotFound,
	)
	ErrActiveWalletExists = apperror.New(
		apperror.CodeConflict,
		"user already has an active payroll cycle",
		http.StatusConflict,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"deduction amount must be greater than zero",
		http.StatusBadRequest,
	)
)
