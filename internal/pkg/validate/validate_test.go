package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavechat/internal/pkg/errs"
)

func TestConnectionID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "all zeros", id: "000"},
		{name: "all nines", id: "999"},
		{name: "middle", id: "042"},
		{name: "empty", id: "", wantErr: true},
		{name: "too short", id: "42", wantErr: true},
		{name: "too long", id: "0042", wantErr: true},
		{name: "letters", id: "a42", wantErr: true},
		{name: "negative sign", id: "-42", wantErr: true},
		{name: "whitespace", id: " 42", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			customErr := ConnectionID(tc.id)
			if tc.wantErr {
				require.NotNil(t, customErr)
				assert.Equal(t, errs.ErrConnectionIDInvalid, customErr.Code)
				assert.Equal(t, "Connection ID must be exactly 3 digits (e.g., 001, 042, 999)", customErr.Message)
				return
			}
			assert.Nil(t, customErr)
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
	}{
		{name: "minimum length", input: "Bob"},
		{name: "maximum length", input: strings.Repeat("a", NameMaxLength)},
		{name: "mixed alphanumeric", input: "Alice42"},
		{name: "too short", input: "Al", wantCode: errs.ErrNameTooShort},
		{name: "empty", input: "", wantCode: errs.ErrNameTooShort},
		{name: "too long", input: strings.Repeat("a", NameMaxLength+1), wantCode: errs.ErrNameTooLong},
		{name: "space inside", input: "Ali ce", wantCode: errs.ErrNameInvalidChars},
		{name: "punctuation", input: "Alice!", wantCode: errs.ErrNameInvalidChars},
		{name: "non-latin letters", input: "Алиса", wantCode: errs.ErrNameInvalidChars},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			customErr := DisplayName(tc.input)
			if tc.wantCode != 0 {
				require.NotNil(t, customErr)
				assert.Equal(t, tc.wantCode, customErr.Code)
				return
			}
			assert.Nil(t, customErr)
		})
	}
}

// Length is checked before the character class so an over-long name with bad
// characters still reports the length problem.
func TestDisplayNameLengthCheckedFirst(t *testing.T) {
	customErr := DisplayName(strings.Repeat("!", NameMaxLength+1))
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrNameTooLong, customErr.Code)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
	}{
		{name: "single char", input: "x"},
		{name: "maximum length", input: strings.Repeat("a", MessageMaxLength)},
		{name: "multibyte runes counted once", input: strings.Repeat("й", MessageMaxLength)},
		{name: "empty", input: "", wantCode: errs.ErrMessageEmpty},
		{name: "too long", input: strings.Repeat("a", MessageMaxLength+1), wantCode: errs.ErrMessageTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			customErr := Message(tc.input)
			if tc.wantCode != 0 {
				require.NotNil(t, customErr)
				assert.Equal(t, tc.wantCode, customErr.Code)
				return
			}
			assert.Nil(t, customErr)
		})
	}
}
