package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the wire-ready shape of a service error, consumed by the
// handlers' writeServiceError helpers.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to a response shape. An AppError anywhere in the
// chain carries its own code and status; everything else becomes an opaque
// 500 so driver and infrastructure messages never reach clients.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
