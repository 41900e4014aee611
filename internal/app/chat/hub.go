/*
Package chat contains the core logic of the presence-and-pairing engine.

This file defines the Hub, the central coordinator: it owns the identity
store, the pending-request table (via the Matchmaker), and the map from
transport session to connected Client. Every inbound event and every HTTP
read path enters through a Hub method that holds the single engine mutex for
its full read-then-write sequence, which is what upholds the store's
invariants under concurrent connections.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"wavechat/internal/app/user"
	"wavechat/internal/pkg/errs"
	"wavechat/internal/pkg/logx"
)

// Hub coordinates the presence and matchmaking services and fans outbound
// events to connected clients. It implements Emitter.
type Hub struct {
	// mu serializes all access to users, sessions, and the pending table.
	// Handlers run to completion under it; the only I/O inside is the final
	// non-blocking emission.
	mu sync.Mutex

	// users is the identity store shared by both services.
	users *user.Store

	// sessions maps transport session id to the attached client.
	sessions map[string]*Client

	presence *Presence
	match    *Matchmaker

	logger zerolog.Logger
}

// NewHub constructs the Hub together with its identity store, Matchmaker, and
// Presence service. There is exactly one Hub per process; it is created at
// startup and torn down at shutdown, and restart wipes all state.
func NewHub() *Hub {
	h := &Hub{
		users:    user.NewStore(),
		sessions: make(map[string]*Client),
		logger:   logx.Logger().With().Str("component", "Hub").Logger(),
	}

	h.match = NewMatchmaker(h.users, h)
	h.presence = NewPresence(h.users, h.match)

	return h
}

// Emit implements Emitter: it pushes one event to the client bound to the
// given session id. Emission is best-effort: unknown sessions are skipped,
// and a full client queue drops the event. Callers already hold h.mu.
func (h *Hub) Emit(sessionID string, event Event, payload any) {
	client, ok := h.sessions[sessionID]
	if !ok {
		h.logger.Debug().
			Str("session_id", sessionID).
			Str("event", string(event)).
			Msg("Emit skipped: session not attached.")
		return
	}

	client.Send(event, payload)
}

// Attach registers a freshly upgraded client under its session id.
func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[c.sessionID] = c
	connectedClients.Inc()

	h.logger.Info().
		Str("session_id", c.sessionID).
		Int("total_clients", len(h.sessions)).
		Msg("Client attached.")
}

// Detach removes a client whose connection ended and runs the disconnection
// bookkeeping: pending-request cleanup, partner notification, and the OFFLINE
// transition. Stale detaches (session already replaced) are ignored.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.sessions[c.sessionID]
	if !ok || current != c {
		h.logger.Debug().Str("session_id", c.sessionID).Msg("Detach ignored for stale client.")
		return
	}

	delete(h.sessions, c.sessionID)
	connectedClients.Dec()
	disconnectsTotal.Inc()

	h.presence.HandleDisconnect(c.sessionID)

	h.logger.Info().
		Str("session_id", c.sessionID).
		Int("total_clients", len(h.sessions)).
		Msg("Client detached.")
}

// HandleRegister processes a user:register event. Reconnection is attempted
// first; if the connection ID was never registered and a display name was
// supplied, a fresh registration is attempted instead. The outcome goes back
// to the same session as a user:registered event.
func (h *Hub) HandleRegister(sessionID, connectionID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	registerErr := h.presence.Reconnect(connectionID, sessionID)

	switch {
	case registerErr == nil:
		reconnectionsTotal.Inc()

	case registerErr.Code == errs.ErrUserNotFound && name != "":
		registerErr = h.presence.Register(connectionID, name, sessionID)
		if registerErr == nil {
			registrationsTotal.Inc()
		}
	}

	payload := UserRegisteredPayload{Success: registerErr == nil}
	if registerErr != nil {
		payload.Error = registerErr.Message
		registerFailuresTotal.Inc()
	}

	h.Emit(sessionID, EventUserRegistered, payload)
}

// HandleChatRequest processes a chat:request event.
func (h *Hub) HandleChatRequest(sessionID, targetConnectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.match.RequestChat(sessionID, targetConnectionID)
}

// HandleChatResponse processes a chat:response event.
func (h *Hub) HandleChatResponse(sessionID, fromConnectionID string, accepted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.match.RespondToChat(sessionID, fromConnectionID, accepted)
}

// HandleChatMessage processes a chat:message event.
func (h *Hub) HandleChatMessage(sessionID, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.match.SendMessage(sessionID, message)
}

// HandleChatLeave processes a chat:leave event.
func (h *Hub) HandleChatLeave(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.match.LeaveChat(sessionID)
}

// GenerateConnectionID serves the HTTP generate endpoint.
func (h *Hub) GenerateConnectionID() (string, *errs.CustomError) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.presence.GenerateConnectionID()
}

// ValidateConnectionID serves the HTTP validate endpoint.
func (h *Hub) ValidateConnectionID(connectionID string) (bool, *errs.CustomError) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.presence.ValidateConnectionID(connectionID)
}

// Shutdown closes every attached client's send queue so their write pumps
// flush a close frame and exit. Called once during graceful shutdown.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Info().Int("clients", len(h.sessions)).Msg("Shutting down Hub.")

	for _, client := range h.sessions {
		client.closeSend()
	}
	h.sessions = make(map[string]*Client)

	h.logger.Info().Msg("Hub shutdown complete.")
}
