package apperr

import (
	"errors"
	"net/http"
)

// Category identifies the kind of failure reported to API clients.
type Category string

// Error categories. The set is closed; every classified failure has one.
const (
	CategoryUnauthenticated   Category = "Unauthenticated"
	CategoryInvalidCredential Category = "InvalidCredential"
	CategoryOwnershipDenied   Category = "OwnershipDenied"
	CategoryNotFound          Category = "NotFound"
	CategoryValidation        Category = "ValidationError"
	CategoryDuplicate         Category = "DuplicateEntry"
	CategoryBadRequest        Category = "BadRequest"
	CategoryInternal          Category = "InternalError"
)

// Error is a failure that carries an explicit category and HTTP status.
// Message is safe to show outside production; Err is the optional cause.
type Error struct {
	Category Category
	Status   int
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports a request the server cannot interpret, such as an
// unparseable body or path parameter.
func BadRequest(message string, err error) *Error {
	return &Error{Category: CategoryBadRequest, Status: http.StatusBadRequest, Message: message, Err: err}
}

// NotFound reports a missing resource.
func NotFound(message string, err error) *Error {
	return &Error{Category: CategoryNotFound, Status: http.StatusNotFound, Message: message, Err: err}
}

// Unauthenticated reports a missing or rejected identity.
func Unauthenticated(message string, err error) *Error {
	return &Error{Category: CategoryUnauthenticated, Status: http.StatusUnauthorized, Message: message, Err: err}
}

// OwnershipDenied reports a mutation attempted by someone other than the
// resource owner. It is surfaced as 409 with the generic mutation-failure
// message so that it reads like any other failed update or delete.
func OwnershipDenied(message string, err error) *Error {
	return &Error{Category: CategoryOwnershipDenied, Status: http.StatusConflict, Message: message, Err: err}
}

// Internal reports an unexpected server-side failure.
func Internal(message string, err error) *Error {
	return &Error{Category: CategoryInternal, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// WithStatus builds an Error with an arbitrary status. The category is
// derived from the status class.
func WithStatus(status int, message string, err error) *Error {
	return &Error{Category: categoryForStatus(status), Status: status, Message: message, Err: err}
}

// IsCategory reports whether err is an *Error of the given category.
func IsCategory(err error, category Category) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Category == category
}

func categoryForStatus(status int) Category {
	switch status {
	case http.StatusBadRequest:
		return CategoryBadRequest
	case http.StatusUnauthorized:
		return CategoryUnauthenticated
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusConflict:
		return CategoryDuplicate
	}
	if status >= http.StatusInternalServerError {
		return CategoryInternal
	}
	return CategoryBadRequest
}
