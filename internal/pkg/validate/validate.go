/*
Package validate performs format checks on client-supplied inputs before they
reach the core services: connection ID shape, display name shape, and chat
message length.

The checks mirror the limits advertised to clients; anything that fails here is
rejected with a user-facing message and never mutates core state.
*/
package validate

import (
	"unicode/utf8"

	"wavechat/internal/pkg/errs"
)

const (
	// ConnectionIDLength is the fixed length of a connection ID.
	ConnectionIDLength = 3

	// NameMinLength and NameMaxLength bound the display name length.
	NameMinLength = 3
	NameMaxLength = 15

	// MessageMaxLength is the maximum chat message length, counted in runes.
	MessageMaxLength = 1000
)

// ConnectionID checks that id is exactly three decimal digits (000-999).
func ConnectionID(id string) *errs.CustomError {
	if len(id) != ConnectionIDLength {
		return errs.NewError(errs.ErrConnectionIDInvalid)
	}

	for _, c := range id {
		if c < '0' || c > '9' {
			return errs.NewError(errs.ErrConnectionIDInvalid)
		}
	}

	return nil
}

// DisplayName checks that name is 3-15 alphanumeric characters.
// The length limits are checked before the character class so that the client
// sees a single, specific reason per failure.
func DisplayName(name string) *errs.CustomError {
	runeCount := utf8.RuneCountInString(name)

	if runeCount < NameMinLength {
		return errs.NewError(errs.ErrNameTooShort)
	}

	if runeCount > NameMaxLength {
		return errs.NewError(errs.ErrNameTooLong)
	}

	for _, c := range name {
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'z'
		isUpper := c >= 'A' && c <= 'Z'

		if !isDigit && !isLower && !isUpper {
			return errs.NewError(errs.ErrNameInvalidChars)
		}
	}

	return nil
}

// Message checks that the chat message is 1-1000 characters long.
func Message(message string) *errs.CustomError {
	runeCount := utf8.RuneCountInString(message)

	if runeCount == 0 {
		return errs.NewError(errs.ErrMessageEmpty)
	}

	if runeCount > MessageMaxLength {
		return errs.NewError(errs.ErrMessageTooLong)
	}

	return nil
}
