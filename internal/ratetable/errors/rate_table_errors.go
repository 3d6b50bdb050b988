package ratetableerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrNoActiveRateTable = apperror.New(
		apperror.CodeNotFound,
		"no active rate table covers the calculation date",
		http.StatusNotFound,
	)
	ErrInvalidRateConfig = apperror.New(
		apperror.CodeInvalidInput,
		"invalid rate table config",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRateType = apperror.New(
		apperror.CodeInvalidInput,
		"rate type must be PAYE, NSSF or NHIF",
		http.StatusBadRequest,
	)
)
