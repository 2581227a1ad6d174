package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound       = "not_found"
	CodeOwnership      = "ownership_error"
	CodeUnauthorized   = "unauthorized"
	CodeBadCredentials = "bad_credentials"
	CodeValidation     = "validation_error"
	CodeBadParams      = "bad_params"
	CodeConflict       = "conflict"
	CodeInternal       = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

// Ownership is returned when the requester is authenticated but does not own the
// resource. It is surfaced as 401, not 403.
func Ownership() *Error {
	return New(http.StatusUnauthorized, CodeOwnership, errors.New("the requested resource is not owned by you"))
}

func Unauthorized(err error) *Error {
	if err == nil {
		err = errors.New("missing or invalid token")
	}
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

func BadCredentials() *Error {
	return New(http.StatusUnauthorized, CodeBadCredentials, errors.New("the provided username or password is incorrect"))
}

func Validation(err error) *Error {
	return New(http.StatusUnprocessableEntity, CodeValidation, err)
}

func BadParams(err error) *Error {
	return New(http.StatusUnprocessableEntity, CodeBadParams, err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
