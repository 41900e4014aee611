/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in payloads sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Connection Identity Errors
const (
	// ErrConnectionIDInvalid indicates that the connection ID is not exactly three decimal digits.
	ErrConnectionIDInvalid = 2101

	// ErrNameTooShort indicates that the display name is shorter than the minimum length.
	ErrNameTooShort = 2102

	// ErrNameTooLong indicates that the display name exceeds the maximum length.
	ErrNameTooLong = 2103

	// ErrNameInvalidChars indicates that the display name contains non-alphanumeric characters.
	ErrNameInvalidChars = 2104

	// ErrIDSpaceExhausted indicates that no free connection ID could be drawn; the caller may retry.
	ErrIDSpaceExhausted = 2105

	// ErrAlreadyConnected indicates that the connection ID is already bound to a live session (multi-tab guard).
	ErrAlreadyConnected = 2106

	// ErrUserNotFound indicates that the connection ID has never been registered.
	ErrUserNotFound = 2107
)

// 3xxx: Chat Protocol Errors
const (
	// ErrNotRegistered indicates that the acting session is not bound to any registered user.
	ErrNotRegistered = 3101

	// ErrTargetNotFound indicates that the requested chat target does not exist.
	ErrTargetNotFound = 3102

	// ErrTargetOffline indicates that the requested chat target has no live session.
	ErrTargetOffline = 3103

	// ErrSelfChat indicates a chat request addressed to the initiator's own connection ID.
	ErrSelfChat = 3104

	// ErrTargetBusy indicates that the requested chat target is already in a chat.
	ErrTargetBusy = 3105

	// ErrRequestDeclined indicates that the invitee declined the chat request.
	ErrRequestDeclined = 3106

	// ErrMessageEmpty indicates an empty chat message.
	ErrMessageEmpty = 3201

	// ErrMessageTooLong indicates that the chat message exceeds the maximum length.
	ErrMessageTooLong = 3202
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
