/*
Package chat contains the core logic of the presence-and-pairing engine.

This file defines the Presence service, which owns connection-ID allocation,
validation, (re)registration with multi-tab arbitration, and disconnection
bookkeeping. Per connection ID the state machine is
OFFLINE -> ONLINE -> IN_CHAT -> ONLINE -> ... -> OFFLINE; no transition skips
ONLINE between chats.

Presence methods assume the Hub's mutex is held; see Hub.
*/
package chat

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wavechat/internal/app/user"
	"wavechat/internal/pkg/errs"
	"wavechat/internal/pkg/logx"
	"wavechat/internal/pkg/randx"
	"wavechat/internal/pkg/validate"
)

// GenerateAttempts is how many random candidates GenerateConnectionID draws
// before giving up. Allocation is best-effort birthday-bound, not
// collision-free: the handle space is only advisory and users may supply
// their own IDs, so a retryable failure is acceptable.
const GenerateAttempts = 3

// Presence arbitrates the online/offline lifecycle of connection IDs.
type Presence struct {
	users *user.Store
	match *Matchmaker

	// candidateID draws one random connection-ID candidate.
	// Swappable in tests; defaults to randx.ConnectionIDCandidate.
	candidateID func() (string, error)

	logger zerolog.Logger
}

// NewPresence constructs the Presence service over the shared identity store.
// The Matchmaker is consulted during disconnect handling to clean up pending
// requests and notify an abandoned partner.
func NewPresence(users *user.Store, match *Matchmaker) *Presence {
	return &Presence{
		users:       users,
		match:       match,
		candidateID: randx.ConnectionIDCandidate,
		logger:      logx.Logger().With().Str("component", "Presence").Logger(),
	}
}

// GenerateConnectionID draws up to GenerateAttempts random 3-digit candidates
// and returns the first one not present in the identity store. It fails with
// ErrIDSpaceExhausted when every candidate collides; callers may retry.
func (p *Presence) GenerateConnectionID() (string, *errs.CustomError) {
	for attempt := 0; attempt < GenerateAttempts; attempt++ {
		candidate, err := p.candidateID()
		if err != nil {
			p.logger.Error().Err(err).Msg("Connection ID candidate generation failed.")
			return "", errs.NewError(errs.ErrUnknown)
		}

		if _, taken := p.users.FindByConnectionID(candidate); !taken {
			p.logger.Info().Str("connection_id", candidate).Msg("Generated connection ID.")
			return candidate, nil
		}
	}

	p.logger.Error().Msg("All generated connection ID candidates are taken.")
	return "", errs.NewError(errs.ErrIDSpaceExhausted)
}

// ValidateConnectionID format-checks the given ID and, when the format is
// valid, reports whether it is available (no record, or record is offline).
// It never mutates state.
func (p *Presence) ValidateConnectionID(connectionID string) (bool, *errs.CustomError) {
	if formatErr := validate.ConnectionID(connectionID); formatErr != nil {
		return false, formatErr
	}

	u, ok := p.users.FindByConnectionID(connectionID)
	available := !ok || u.Status == user.StatusOffline

	return available, nil
}

// Register binds a connection ID to a live transport session.
//
// A brand-new ID creates an ONLINE record. A known ID that is already bound to
// a live session fails with ErrAlreadyConnected without mutating state
// (multi-tab guard). A known ID that is offline is rebound to the new session
// (reconnection); the stored display name is kept even if a different one was
// supplied.
func (p *Presence) Register(connectionID, name, sessionID string) *errs.CustomError {
	name = strings.TrimSpace(name)

	if formatErr := validate.ConnectionID(connectionID); formatErr != nil {
		return formatErr
	}

	if formatErr := validate.DisplayName(name); formatErr != nil {
		return formatErr
	}

	existing, ok := p.users.FindByConnectionID(connectionID)
	if ok {
		if isOnlineElsewhere(existing) {
			p.logger.Warn().Str("connection_id", connectionID).Msg("Multi-tab registration attempt.")
			return errs.NewError(errs.ErrAlreadyConnected)
		}

		p.users.UpdateSession(connectionID, sessionID)
		p.users.UpdateStatus(connectionID, user.StatusOnline)

		p.logger.Info().
			Str("connection_id", connectionID).
			Str("name", existing.Name).
			Msg("User reconnected.")
		return nil
	}

	p.users.Create(user.User{
		ConnectionID: connectionID,
		Name:         name,
		SessionID:    sessionID,
		Status:       user.StatusOnline,
		RegisteredAt: time.Now(),
	})

	p.logger.Info().
		Str("connection_id", connectionID).
		Str("name", name).
		Msg("New user registered.")
	return nil
}

// Reconnect rebinds a known connection ID to a new session without a display
// name. It fails with ErrUserNotFound if the ID was never registered; callers
// use that to distinguish a returning user from a new registration.
func (p *Presence) Reconnect(connectionID, sessionID string) *errs.CustomError {
	u, ok := p.users.FindByConnectionID(connectionID)
	if !ok {
		return errs.NewError(errs.ErrUserNotFound)
	}

	if isOnlineElsewhere(u) {
		p.logger.Warn().Str("connection_id", connectionID).Msg("Multi-tab reconnection attempt.")
		return errs.NewError(errs.ErrAlreadyConnected)
	}

	p.users.UpdateSession(connectionID, sessionID)
	p.users.UpdateStatus(connectionID, user.StatusOnline)

	p.logger.Info().Str("connection_id", connectionID).Msg("User reconnected.")
	return nil
}

// HandleDisconnect performs disconnection bookkeeping for a dropped transport
// session. Unknown sessions are a no-op. Otherwise pending requests to and
// from the user are cleaned up, an in-chat partner is notified and released,
// and the user's record transitions to OFFLINE with session and partner cleared.
func (p *Presence) HandleDisconnect(sessionID string) {
	u, ok := p.users.FindBySession(sessionID)
	if !ok {
		p.logger.Debug().Str("session_id", sessionID).Msg("Disconnect: no user bound to session.")
		return
	}

	p.logger.Info().
		Str("connection_id", u.ConnectionID).
		Str("name", u.Name).
		Bool("was_in_chat", u.Status == user.StatusInChat).
		Msg("User disconnected.")

	p.match.CleanupPendingRequests(u.ConnectionID)

	if u.PartnerID != "" {
		p.match.NotifyPartnerDisconnected(u.ConnectionID, u.PartnerID)
	}

	p.users.UpdateStatus(u.ConnectionID, user.StatusOffline)
	p.users.UpdateSession(u.ConnectionID, "")
	p.users.UpdatePartner(u.ConnectionID, "")
}

// isOnlineElsewhere reports whether the record is bound to a live session,
// meaning another tab or device currently holds this connection ID.
func isOnlineElsewhere(u user.User) bool {
	return u.SessionID != "" && u.Status != user.StatusOffline
}
