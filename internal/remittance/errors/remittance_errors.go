package remittanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrRemittanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax remittance not found",
		http.StatusNotFound,
	)
	ErrAlreadyRemitted = apperror.New(
		apperror.CodeInvalidState,
		"tax remittance has already been remitted",
		http.StatusConflict,
	)
	ErrReferenceRequired = apperror.New(
		apperror.CodeInvalidInput,
		"payment reference is required",
		http.StatusBadRequest,
	)
)
