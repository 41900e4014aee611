package user

import "errors"

// ErrConnectionIDTaken is returned by Create when the connection ID is already present.
var ErrConnectionIDTaken = errors.New("connection ID already registered")

// Store is the in-memory identity store. It owns all User records and the
// session-to-connection index, and offers CRUD-like primitives with no
// business rules.
//
// The Store carries no locking of its own: the chat Hub serializes every
// mutating and read-then-write sequence behind a single mutex, so primitives
// here always run one at a time.
type Store struct {
	// users maps connection ID to the user record. Records are never deleted,
	// only transitioned to StatusOffline.
	users map[string]*User

	// sessionToConnection maps a live transport session id to its connection ID.
	sessionToConnection map[string]string
}

// NewStore constructs an empty identity store.
func NewStore() *Store {
	return &Store{
		users:               make(map[string]*User),
		sessionToConnection: make(map[string]string),
	}
}

// Create inserts a brand-new user record. It fails with ErrConnectionIDTaken
// if the connection ID is already present; callers are expected to pre-check.
func (s *Store) Create(u User) error {
	if _, ok := s.users[u.ConnectionID]; ok {
		return ErrConnectionIDTaken
	}

	record := u
	s.users[u.ConnectionID] = &record

	if u.SessionID != "" {
		s.sessionToConnection[u.SessionID] = u.ConnectionID
	}

	return nil
}

// UpdateStatus sets the presence status for the given connection ID.
// It reports false if the connection ID is unknown.
func (s *Store) UpdateStatus(connectionID string, status Status) bool {
	u, ok := s.users[connectionID]
	if !ok {
		return false
	}

	u.Status = status
	return true
}

// UpdateSession rebinds the transport session for the given connection ID.
// The stale session index entry is removed before the new one is installed so
// a dead session can never resolve back to the user. An empty sessionID leaves
// the user unbound (offline).
func (s *Store) UpdateSession(connectionID, sessionID string) bool {
	u, ok := s.users[connectionID]
	if !ok {
		return false
	}

	if u.SessionID != "" {
		delete(s.sessionToConnection, u.SessionID)
	}

	u.SessionID = sessionID

	if sessionID != "" {
		s.sessionToConnection[sessionID] = connectionID
	}

	return true
}

// UpdatePartner sets or clears (empty string) the chat partner for the given
// connection ID. It reports false if the connection ID is unknown.
func (s *Store) UpdatePartner(connectionID, partnerID string) bool {
	u, ok := s.users[connectionID]
	if !ok {
		return false
	}

	u.PartnerID = partnerID
	return true
}

// FindByConnectionID returns a copy of the user record for the given
// connection ID. Mutations go through the Update primitives only.
func (s *Store) FindByConnectionID(connectionID string) (User, bool) {
	u, ok := s.users[connectionID]
	if !ok {
		return User{}, false
	}

	return *u, true
}

// FindBySession resolves a transport session id to a copy of its user record.
func (s *Store) FindBySession(sessionID string) (User, bool) {
	connectionID, ok := s.sessionToConnection[sessionID]
	if !ok {
		return User{}, false
	}

	return s.FindByConnectionID(connectionID)
}
