/*
Package handler provides the HTTP handlers and routing setup for the Wave Chat server.

This file contains the HandleWebSocket function, which rate limits and
upgrades incoming connections and starts the client read/write loops. The
server assigns each connection a fresh transport-session id; identity is
established afterwards over the socket via user:register.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"wavechat/internal/app/chat"
	"wavechat/internal/pkg/errs"
	"wavechat/internal/pkg/limiter"
	"wavechat/internal/pkg/logx"
	"wavechat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, conn)

		go client.WritePump()

		deps.Hub.Attach(client)

		logx.Info("WebSocket connection established", "session_id", client.SessionID())

		client.ReadPump()
	}
}
