package errors

import "fmt"

const (
	CodeBadRequest  = "bad_request"
	CodeForbidden   = "forbidden"
	CodeNotFound    = "not_found"
	CodeConflict    = "conflict"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal_error"
)

type VideoError struct {
	Code    string
	Message string
	Err     error
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *VideoError {
	return &VideoError{Code: CodeBadRequest, Message: message}
}

func Forbidden(message string) *VideoError {
	return &VideoError{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *VideoError {
	return &VideoError{Code: CodeNotFound, Message: message}
}

func Conflict(message string) *VideoError {
	return &VideoError{Code: CodeConflict, Message: message}
}

func Unavailable(message string, err error) *VideoError {
	return &VideoError{Code: CodeUnavailable, Message: message, Err: err}
}

func Internal(message string, err error) *VideoError {
	return &VideoError{Code: CodeInternal, Message: message, Err: err}
}

// HasCode reports whether err is a VideoError carrying the given code.
func HasCode(err error, code string) bool {
	ve, ok := err.(*VideoError)
	return ok && ve.Code == code
}
