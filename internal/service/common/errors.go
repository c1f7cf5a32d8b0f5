package common

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeInternal       Code = "internal"
	CodeConfiguration  Code = "configuration"
	CodeClientInput    Code = "client_input"
	CodeOriginRejected Code = "origin_rejected"
	CodeUpstream       Code = "upstream"
	CodeTransport      Code = "transport"
)

// Error is the service error type. Message is safe to return to callers,
// Detail and Cause are for logs unless a handler decides otherwise.
type Error struct {
	Code    Code
	Message string
	// Status is the upstream HTTP status for CodeUpstream errors.
	Status int
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// UpstreamError records a non-2xx answer from the record service.
func UpstreamError(status int, detail string) *Error {
	return &Error{
		Code:    CodeUpstream,
		Message: "Airtable request failed",
		Status:  status,
		Detail:  detail,
	}
}

// HTTPStatus maps an error to the status a handler should answer with.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeClientInput:
		return http.StatusBadRequest
	case CodeOriginRejected:
		return http.StatusForbidden
	case CodeUpstream:
		if e.Status >= 400 && e.Status <= 599 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to clients.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != CodeTransport && e.Code != CodeInternal {
		return e.Message
	}
	return "Proxy error"
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
