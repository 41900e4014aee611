/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error
interface and carries a business code, a user-facing message, and an HTTP status
code for unified error reporting across the HTTP API and the WebSocket protocol.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"wavechat/internal/pkg/logx"
)

// CustomError is the error structure used throughout the application. It wraps
// the Go error interface, adding a business code and an HTTP status code.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the user-facing error description. Over the WebSocket it is
	// delivered verbatim in event payloads.
	Message string

	// Status is the HTTP status code used when the error reaches an HTTP response.
	Status int
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined error code. Optional details
// fill printf-style placeholders in message templates. Unknown codes fall back
// to ErrUnknown.
//
// Codes without an explicit HTTP status get StatusOK: those errors normally
// travel inside WebSocket payloads, and an HTTP fallback must never write a
// zero status header.
func NewError(code int, details ...any) *CustomError {
	template, known := errorMap[code]
	if !known {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		fallback := errorMap[ErrUnknown]
		return &fallback
	}

	customErr := template

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) == 0 {
		return &customErr
	}

	if code == ErrUnknown {
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
		return &customErr
	}

	if strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	} else {
		logx.Warn("Details provided for error, but message template has no formatting placeholders. Details ignored.")
	}

	return &customErr
}
