/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and protocol event payloads.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
// Messages containing printf verbs are templates filled via NewError details.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Connection Identity Errors
	ErrConnectionIDInvalid: {Code: ErrConnectionIDInvalid, Message: "Connection ID must be exactly 3 digits (e.g., 001, 042, 999)", Status: http.StatusBadRequest},
	ErrNameTooShort:        {Code: ErrNameTooShort, Message: "Name must be at least 3 characters", Status: http.StatusBadRequest},
	ErrNameTooLong:         {Code: ErrNameTooLong, Message: "Name must be 15 characters or less", Status: http.StatusBadRequest},
	ErrNameInvalidChars:    {Code: ErrNameInvalidChars, Message: "Name can only contain letters and numbers", Status: http.StatusBadRequest},
	ErrIDSpaceExhausted:    {Code: ErrIDSpaceExhausted, Message: "Unable to generate unique connection ID. Please try again."},
	ErrAlreadyConnected:    {Code: ErrAlreadyConnected, Message: "Wave Chat is already open in another tab"},
	ErrUserNotFound:        {Code: ErrUserNotFound, Message: "User not found"},

	// 3xxx: Chat Protocol Errors
	ErrNotRegistered:   {Code: ErrNotRegistered, Message: "You are not registered"},
	ErrTargetNotFound:  {Code: ErrTargetNotFound, Message: "User %s not found"},
	ErrTargetOffline:   {Code: ErrTargetOffline, Message: "User %s is offline"},
	ErrSelfChat:        {Code: ErrSelfChat, Message: "You cannot chat with yourself"},
	ErrTargetBusy:      {Code: ErrTargetBusy, Message: "%s is currently in another chat"},
	ErrRequestDeclined: {Code: ErrRequestDeclined, Message: "%s declined your chat request"},
	ErrMessageEmpty:    {Code: ErrMessageEmpty, Message: "Message cannot be empty", Status: http.StatusBadRequest},
	ErrMessageTooLong:  {Code: ErrMessageTooLong, Message: "Message must be 1000 characters or less", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
