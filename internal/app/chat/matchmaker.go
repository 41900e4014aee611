/*
Package chat contains the core logic of the presence-and-pairing engine.

This file defines the Matchmaker, which owns the pending-request table and the
request/accept/decline protocol, chat session creation, message relay, and
termination on leave or disconnect.

Matchmaker methods assume the Hub's mutex is held; see Hub. Every outcome is
observable only through emitted events: protocol-state errors either produce a
result event when the actor has a result channel, or are dropped silently when
the protocol defines none (stale responses, messages while not in chat).
*/
package chat

import (
	"time"

	"github.com/rs/zerolog"

	"wavechat/internal/app/user"
	"wavechat/internal/pkg/errs"
	"wavechat/internal/pkg/logx"
	"wavechat/internal/pkg/randx"
	"wavechat/internal/pkg/validate"
)

// Matchmaker owns pending chat requests and active session pairing.
type Matchmaker struct {
	users   *user.Store
	emitter Emitter

	// pending maps target connection ID to initiator connection ID: at most
	// one outstanding request per target. A second request to the same target
	// silently overwrites the first.
	pending map[string]string

	logger zerolog.Logger
}

// NewMatchmaker constructs the Matchmaker over the shared identity store.
// Outbound events go through the given emitter.
func NewMatchmaker(users *user.Store, emitter Emitter) *Matchmaker {
	return &Matchmaker{
		users:   users,
		emitter: emitter,
		pending: make(map[string]string),
		logger:  logx.Logger().With().Str("component", "Matchmaker").Logger(),
	}
}

// RequestChat handles a chat request from the session bound to
// initiatorSessionID toward the given target connection ID.
//
// Failure checks run in a fixed priority order (existence, offline, self,
// busy) so the initiator always sees a single deterministic reason. On
// success the target receives an incoming-request event and the initiator a
// positive request-result; the only state change is the pending entry.
func (m *Matchmaker) RequestChat(initiatorSessionID, targetConnectionID string) {
	initiator, ok := m.users.FindBySession(initiatorSessionID)
	if !ok {
		chatRequestsTotal.WithLabelValues(requestOutcomeNotRegistered).Inc()
		m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
			Success: false,
			Error:   errs.NewError(errs.ErrNotRegistered).Message,
		})
		return
	}

	target, ok := m.users.FindByConnectionID(targetConnectionID)
	if !ok {
		chatRequestsTotal.WithLabelValues(requestOutcomeNotFound).Inc()
		m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
			Success: false,
			Error:   errs.NewError(errs.ErrTargetNotFound, targetConnectionID).Message,
		})
		return
	}

	if target.Status == user.StatusOffline || target.SessionID == "" {
		chatRequestsTotal.WithLabelValues(requestOutcomeOffline).Inc()
		m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
			Success: false,
			Error:   errs.NewError(errs.ErrTargetOffline, targetConnectionID).Message,
		})
		return
	}

	if target.ConnectionID == initiator.ConnectionID {
		chatRequestsTotal.WithLabelValues(requestOutcomeSelf).Inc()
		m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
			Success: false,
			Error:   errs.NewError(errs.ErrSelfChat).Message,
		})
		return
	}

	if target.Status == user.StatusInChat {
		chatRequestsTotal.WithLabelValues(requestOutcomeBusy).Inc()
		m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
			Success:    false,
			IsBusy:     true,
			TargetName: target.Name,
			Error:      errs.NewError(errs.ErrTargetBusy, target.Name).Message,
		})
		return
	}

	m.pending[target.ConnectionID] = initiator.ConnectionID

	m.logger.Info().
		Str("from", initiator.ConnectionID).
		Str("to", target.ConnectionID).
		Msg("Chat request sent.")

	m.emitter.Emit(target.SessionID, EventIncomingRequest, IncomingRequestPayload{
		From:     initiator.ConnectionID,
		FromName: initiator.Name,
	})

	m.emitter.Emit(initiatorSessionID, EventRequestResult, RequestResultPayload{
		Success:    true,
		TargetName: target.Name,
	})

	chatRequestsTotal.WithLabelValues(requestOutcomeSent).Inc()
}

// RespondToChat handles the invitee's accept/decline of a pending request.
// Responses from unknown sessions, or responses that do not match the pending
// entry for the responder (stale or forged), are dropped silently: those
// conditions mean the state already changed underneath the client.
func (m *Matchmaker) RespondToChat(responderSessionID, fromConnectionID string, accepted bool) {
	responder, ok := m.users.FindBySession(responderSessionID)
	if !ok {
		m.logger.Warn().Str("session_id", responderSessionID).Msg("Chat response from unregistered session.")
		return
	}

	pendingInitiatorID, ok := m.pending[responder.ConnectionID]
	if !ok || pendingInitiatorID != fromConnectionID {
		m.logger.Warn().
			Str("responder", responder.ConnectionID).
			Str("from", fromConnectionID).
			Msg("Invalid chat response - no matching pending request.")
		return
	}

	delete(m.pending, responder.ConnectionID)

	initiator, ok := m.users.FindByConnectionID(fromConnectionID)
	if !ok || initiator.SessionID == "" {
		m.logger.Warn().Str("from", fromConnectionID).Msg("Initiator no longer available.")
		return
	}

	m.logger.Info().
		Str("from", responder.ConnectionID).
		Str("to", initiator.ConnectionID).
		Bool("accepted", accepted).
		Msg("Chat response received.")

	if !accepted {
		m.emitter.Emit(initiator.SessionID, EventRequestResult, RequestResultPayload{
			Success: false,
			Error:   errs.NewError(errs.ErrRequestDeclined, responder.Name).Message,
		})
		return
	}

	m.startChat(initiator.ConnectionID, responder.ConnectionID)
}

// startChat establishes a session between initiator and acceptor. Both must
// still hold live sessions; a race with a disconnect aborts with no partial
// state change. Any other pending request either participant initiated is
// cancelled (with notification to its target) before the pair transitions to
// IN_CHAT, so no stale invitation can survive a successful pairing.
func (m *Matchmaker) startChat(initiatorID, acceptorID string) {
	initiator, iOK := m.users.FindByConnectionID(initiatorID)
	acceptor, aOK := m.users.FindByConnectionID(acceptorID)

	if !iOK || !aOK || initiator.SessionID == "" || acceptor.SessionID == "" {
		m.logger.Error().
			Str("initiator", initiatorID).
			Str("acceptor", acceptorID).
			Msg("Cannot start chat - users not available.")
		return
	}

	sessionID := randx.SessionID()

	m.cancelPendingFrom(initiatorID)
	m.cancelPendingFrom(acceptorID)

	m.users.UpdateStatus(initiatorID, user.StatusInChat)
	m.users.UpdateStatus(acceptorID, user.StatusInChat)
	m.users.UpdatePartner(initiatorID, acceptorID)
	m.users.UpdatePartner(acceptorID, initiatorID)

	m.logger.Info().
		Str("session_id", sessionID).
		Str("initiator", initiatorID).
		Str("acceptor", acceptorID).
		Msg("Chat started.")

	m.emitter.Emit(initiator.SessionID, EventChatStarted, ChatStartedPayload{
		SessionID:   sessionID,
		PartnerID:   acceptorID,
		PartnerName: acceptor.Name,
		IsInitiator: true,
	})

	m.emitter.Emit(acceptor.SessionID, EventChatStarted, ChatStartedPayload{
		SessionID:   sessionID,
		PartnerID:   initiatorID,
		PartnerName: initiator.Name,
		IsInitiator: false,
	})

	sessionsStartedTotal.Inc()
	activeChatPairs.Inc()
}

// cancelPendingFrom drops every pending entry whose initiator is the given
// connection ID and notifies each affected target with a cancellation event.
func (m *Matchmaker) cancelPendingFrom(initiatorID string) {
	var targetsToCancel []string

	for targetID, pendingInitiatorID := range m.pending {
		if pendingInitiatorID == initiatorID {
			targetsToCancel = append(targetsToCancel, targetID)
		}
	}

	for _, targetID := range targetsToCancel {
		delete(m.pending, targetID)

		target, ok := m.users.FindByConnectionID(targetID)
		if !ok || target.SessionID == "" {
			continue
		}

		m.emitter.Emit(target.SessionID, EventRequestCancelled, RequestCancelledPayload{
			From:   initiatorID,
			Reason: CancelReasonPairedElsewhere,
		})

		m.logger.Info().
			Str("initiator", initiatorID).
			Str("target", targetID).
			Msg("Pending chat request cancelled.")
	}
}

// SendMessage relays one chat message from the sender's session to both ends
// of the chat. Messages from unknown sessions, from users not in a chat, or
// with an invalid shape are dropped silently. The identical payload is
// delivered to the sender (as confirmation echo) and the partner, with a
// fresh message id, so the sender's client never needs a local echo.
func (m *Matchmaker) SendMessage(senderSessionID, message string) {
	sender, ok := m.users.FindBySession(senderSessionID)
	if !ok {
		m.logger.Warn().Str("session_id", senderSessionID).Msg("Message from unregistered session.")
		return
	}

	if sender.Status != user.StatusInChat || sender.PartnerID == "" {
		m.logger.Warn().Str("connection_id", sender.ConnectionID).Msg("Message from user not in chat.")
		return
	}

	if validationErr := validate.Message(message); validationErr != nil {
		m.logger.Warn().
			Str("connection_id", sender.ConnectionID).
			Str("error", validationErr.Message).
			Msg("Invalid message.")
		return
	}

	partner, ok := m.users.FindByConnectionID(sender.PartnerID)
	if !ok || partner.SessionID == "" {
		m.logger.Warn().
			Str("sender", sender.ConnectionID).
			Str("partner", sender.PartnerID).
			Msg("Partner not available for message.")
		return
	}

	payload := MessageReceivedPayload{
		ID:        randx.MessageID(),
		From:      sender.ConnectionID,
		FromName:  sender.Name,
		Content:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	m.emitter.Emit(senderSessionID, EventMessageReceived, payload)
	m.emitter.Emit(partner.SessionID, EventMessageReceived, payload)

	m.logger.Info().
		Str("from", sender.ConnectionID).
		Str("to", partner.ConnectionID).
		Str("message_id", payload.ID).
		Msg("Chat message relayed.")

	messagesRelayedTotal.Inc()
}

// LeaveChat handles a voluntary leave. Leaves from unknown sessions or users
// not in a chat are ignored. Both participants transition back to ONLINE with
// partners cleared; the remaining partner (if still connected) receives a
// chat-ended event naming the leaver.
func (m *Matchmaker) LeaveChat(leaverSessionID string) {
	leaver, ok := m.users.FindBySession(leaverSessionID)
	if !ok {
		m.logger.Warn().Str("session_id", leaverSessionID).Msg("Leave from unregistered session.")
		return
	}

	if leaver.Status != user.StatusInChat || leaver.PartnerID == "" {
		m.logger.Debug().Str("connection_id", leaver.ConnectionID).Msg("Leave from user not in chat.")
		return
	}

	partnerID := leaver.PartnerID
	partner, partnerOK := m.users.FindByConnectionID(partnerID)

	m.logger.Info().
		Str("leaver", leaver.ConnectionID).
		Str("partner", partnerID).
		Msg("User left chat.")

	m.users.UpdateStatus(leaver.ConnectionID, user.StatusOnline)
	m.users.UpdatePartner(leaver.ConnectionID, "")

	if partnerOK {
		m.users.UpdateStatus(partner.ConnectionID, user.StatusOnline)
		m.users.UpdatePartner(partner.ConnectionID, "")

		if partner.SessionID != "" {
			m.emitter.Emit(partner.SessionID, EventChatEnded, ChatEndedPayload{
				Reason:  EndReasonPartnerLeft,
				Message: leaver.Name + " has left the chat",
			})
		}
	}

	activeChatPairs.Dec()
}

// NotifyPartnerDisconnected releases the partner of a user whose connection
// dropped. Only the partner's state and notification are touched here; the
// disconnected user's own record is handled by the Presence service.
func (m *Matchmaker) NotifyPartnerDisconnected(disconnectedID, partnerID string) {
	partner, ok := m.users.FindByConnectionID(partnerID)

	m.logger.Info().
		Str("disconnected", disconnectedID).
		Str("partner", partnerID).
		Msg("Partner disconnected from chat.")

	if !ok {
		return
	}

	m.users.UpdateStatus(partner.ConnectionID, user.StatusOnline)
	m.users.UpdatePartner(partner.ConnectionID, "")

	if partner.SessionID != "" {
		m.emitter.Emit(partner.SessionID, EventChatEnded, ChatEndedPayload{
			Reason:  EndReasonPartnerDisconnected,
			Message: "Your chat partner has disconnected",
		})
	}

	activeChatPairs.Dec()
}

// CleanupPendingRequests clears every pending entry involving the given
// connection ID after its disconnect. A request targeting the user is removed
// silently (the initiator is not told about this cleanup path); requests the
// user initiated are cancelled with notification, reusing the pairing
// cancellation logic.
func (m *Matchmaker) CleanupPendingRequests(connectionID string) {
	if pendingFromID, ok := m.pending[connectionID]; ok {
		delete(m.pending, connectionID)
		m.logger.Info().
			Str("target", connectionID).
			Str("initiator", pendingFromID).
			Msg("Pending request to disconnected user cleared.")
	}

	m.cancelPendingFrom(connectionID)
}
