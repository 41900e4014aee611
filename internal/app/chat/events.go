/*
Package chat contains the core logic of the presence-and-pairing engine:
the Hub that owns shared state, the WebSocket Client lifecycle, the Presence
service (registration, reconnection, disconnection) and the Matchmaker
(chat requests, sessions, message relay).

This file defines the wire protocol: event names and payload structures
exchanged with clients over the WebSocket connection. Every frame is a JSON
envelope carrying an event name and an event-specific payload.
*/
package chat

import "encoding/json"

// Event names an inbound or outbound protocol event.
type Event string

// Client -> server events.
const (
	EventUserRegister Event = "user:register"
	EventChatRequest  Event = "chat:request"
	EventChatResponse Event = "chat:response"
	EventChatMessage  Event = "chat:message"
	EventChatLeave    Event = "chat:leave"
)

// Server -> client events.
const (
	EventUserRegistered   Event = "user:registered"
	EventIncomingRequest  Event = "chat:incoming-request"
	EventRequestResult    Event = "chat:request-result"
	EventRequestCancelled Event = "chat:request-cancelled"
	EventChatStarted      Event = "chat:started"
	EventMessageReceived  Event = "chat:message-received"
	EventChatEnded        Event = "chat:ended"
)

// EndReason explains why a chat session ended.
type EndReason string

const (
	// EndReasonPartnerLeft means the partner left the chat voluntarily.
	EndReasonPartnerLeft EndReason = "partner_left"

	// EndReasonPartnerDisconnected means the partner's connection dropped.
	EndReasonPartnerDisconnected EndReason = "partner_disconnected"
)

// CancelReasonPairedElsewhere is the reason sent with a request-cancelled
// event when the initiator started a session with someone else.
const CancelReasonPairedElsewhere = "Requester started a chat with someone else"

// Envelope is the JSON frame exchanged over the WebSocket connection.
type Envelope struct {
	Event   Event           `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// UserRegisterPayload registers or reconnects a connection ID.
// Name is optional: reconnecting clients send only the connection ID.
type UserRegisterPayload struct {
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name,omitempty"`
}

// ChatRequestPayload asks to chat with the given target.
type ChatRequestPayload struct {
	TargetConnectionID string `json:"targetConnectionId"`
}

// ChatResponsePayload accepts or declines a pending request from a given initiator.
type ChatResponsePayload struct {
	FromConnectionID string `json:"fromConnectionId"`
	Accepted         bool   `json:"accepted"`
}

// ChatMessagePayload carries one chat message from the sender.
type ChatMessagePayload struct {
	Message string `json:"message"`
}

// UserRegisteredPayload reports the outcome of a register/reconnect attempt.
type UserRegisteredPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// IncomingRequestPayload notifies the invitee of a new chat request.
type IncomingRequestPayload struct {
	From     string `json:"from"`
	FromName string `json:"fromName"`
}

// RequestResultPayload reports the outcome of a chat request to its initiator.
// IsBusy distinguishes a busy target so the client can offer to wait.
type RequestResultPayload struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	IsBusy     bool   `json:"isBusy,omitempty"`
	TargetName string `json:"targetName,omitempty"`
}

// RequestCancelledPayload tells a waiting invitee that the request was withdrawn.
type RequestCancelledPayload struct {
	From   string `json:"from"`
	Reason string `json:"reason"`
}

// ChatStartedPayload announces a new chat session to one participant.
// IsInitiator distinguishes the two ends; clients use it to decide who sends
// an opening greeting.
type ChatStartedPayload struct {
	SessionID   string `json:"sessionId"`
	PartnerID   string `json:"partnerId"`
	PartnerName string `json:"partnerName"`
	IsInitiator bool   `json:"isInitiator"`
}

// MessageReceivedPayload delivers one chat message. The identical payload goes
// to both participants: the sender receives it as the delivery echo.
type MessageReceivedPayload struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	FromName  string `json:"fromName"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatEndedPayload announces the end of a chat session to the remaining partner.
type ChatEndedPayload struct {
	Reason  EndReason `json:"reason"`
	Message string    `json:"message"`
}

// Emitter pushes a named event to the endpoint bound to a transport session.
// Emission is best-effort and at-most-once: unknown sessions are skipped and
// the send never blocks or retries.
type Emitter interface {
	Emit(sessionID string, event Event, payload any)
}
