package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func Unauthorized(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

func Forbidden(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func Validation(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func Conflict(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

func IsNotFound(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusNotFound
}
