/*
Package user contains the core data structures for participant identity:
the User record and the in-memory Store that indexes records by connection ID
and by transport session.
*/
package user

import "time"

// Status represents a user's presence state. The values double as wire values
// in client-facing payloads.
type Status string

const (
	// StatusOffline means the connection ID is known but has no live session.
	StatusOffline Status = "offline"

	// StatusOnline means the user has a live session and is free to chat.
	StatusOnline Status = "online"

	// StatusInChat means the user is currently paired with a partner.
	StatusInChat Status = "in_chat"
)

// User represents one registered participant. The connection ID is a
// client-chosen 3-digit rendezvous key, not a server-assigned identity.
type User struct {
	// ConnectionID is the unique 3-digit handle (e.g., "042") other users dial.
	ConnectionID string

	// Name is the display name, set at first registration.
	Name string

	// SessionID is the opaque id of the currently-bound transport connection;
	// empty when the user is offline.
	SessionID string

	// Status is the user's presence state.
	Status Status

	// PartnerID is the connection ID of the current chat partner;
	// non-empty exactly while Status is StatusInChat.
	PartnerID string

	// RegisteredAt is the creation timestamp, set once and never mutated.
	RegisteredAt time.Time
}
