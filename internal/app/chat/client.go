/*
Package chat contains the core logic of the presence-and-pairing engine.

This file defines the Client struct, representing an active WebSocket
connection. It manages the connection's lifecycle, the message communication
loops (ReadPump and WritePump), and dispatch of inbound protocol events into
the Hub.
*/
package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wavechat/internal/pkg/logx"
	"wavechat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// sendQueueSize is the per-client outbound buffer; emission drops when it is full.
	sendQueueSize = 256
)

// Client represents one active WebSocket connection. The server-assigned
// session id is the connection's identity inside the engine; the user behind
// it is resolved through the identity store after registration.
type Client struct {
	// hub is the engine coordinator this client reports to.
	hub *Hub

	// conn is the underlying WebSocket connection object.
	conn *websocket.Conn

	// sessionID is the opaque transport-session id, assigned on upgrade.
	sessionID string

	// send is a buffered channel queuing frames waiting to go to the client.
	send chan []byte

	// closeOnce guards the send channel against double close.
	closeOnce sync.Once

	// structured logger with session context.
	logger zerolog.Logger
}

// NewClient constructs a Client for a freshly upgraded connection and assigns
// it a fresh transport-session id.
func NewClient(hub *Hub, wsConn *websocket.Conn) *Client {
	sessionID := randx.SessionID()

	clientLogger := logx.Logger().With().
		Str("session_id", sessionID).
		Logger()

	return &Client{
		hub:       hub,
		conn:      wsConn,
		sessionID: sessionID,
		send:      make(chan []byte, sendQueueSize),
		logger:    clientLogger,
	}
}

// SessionID returns the transport-session id assigned to this connection.
func (c *Client) SessionID() string {
	return c.sessionID
}

// ReadPump reads frames from the WebSocket connection until it closes.
// It handles heartbeats (Pong), envelope parsing, and dispatch into the Hub,
// and performs disconnect cleanup when the loop exits.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.dispatchInbound(frame)
	}
}

// cleanupOnDisconnect detaches the client from the Hub (which runs the
// disconnection bookkeeping) and closes the raw connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Detach(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// dispatchInbound parses one inbound frame and routes it to the Hub handler
// for its event. Malformed frames and unsupported events are logged and dropped.
func (c *Client) dispatchInbound(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		c.logger.Warn().Err(err).
			Bytes("frame", frame).
			Msg("Client sent invalid JSON")
		return
	}

	switch env.Event {
	case EventUserRegister:
		var p UserRegisterPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid user:register payload")
			return
		}
		c.hub.HandleRegister(c.sessionID, p.ConnectionID, p.Name)

	case EventChatRequest:
		var p ChatRequestPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid chat:request payload")
			return
		}
		c.hub.HandleChatRequest(c.sessionID, p.TargetConnectionID)

	case EventChatResponse:
		var p ChatResponsePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid chat:response payload")
			return
		}
		c.hub.HandleChatResponse(c.sessionID, p.FromConnectionID, p.Accepted)

	case EventChatMessage:
		var p ChatMessagePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid chat:message payload")
			return
		}
		c.hub.HandleChatMessage(c.sessionID, p.Message)

	case EventChatLeave:
		c.hub.HandleChatLeave(c.sessionID)

	default:
		c.logger.Warn().Str("event", string(env.Event)).Msg("Client sent unsupported event")
	}
}

// Send queues one outbound event for this client. The push is non-blocking:
// when the queue is full the event is dropped with a warning, never retried.
func (c *Client) Send(event Event, payload any) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error().Err(err).Str("event", string(event)).Msg("Error marshaling event payload")
		return
	}

	frame, err := json.Marshal(Envelope{Event: event, Payload: payloadBytes})
	if err != nil {
		c.logger.Error().Err(err).Str("event", string(event)).Msg("Error marshaling event envelope")
		return
	}

	select {
	case c.send <- frame:
	default:
		c.logger.Warn().
			Int("queue_len", len(c.send)).
			Str("event", string(event)).
			Msg("Client send channel full, dropping event")
	}
}

// closeSend closes the outbound queue exactly once, signalling the write pump
// to flush a close frame and exit.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// WritePump writes queued frames to the WebSocket connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping to maintain the heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
