/*
Package handler provides the HTTP handlers and routing setup for the Wave Chat server.

This file defines the main Router, applying necessary middleware like logging,
CORS, and IP-based rate limiting before delegating requests to the
connection-ID API and the WebSocket endpoint.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"wavechat/internal/pkg/limiter"
	"wavechat/internal/pkg/logx"
	"wavechat/internal/pkg/resp"
)

const (
	// GenerateRate limits how often one IP may draw fresh connection IDs.
	GenerateRate  = 0.2
	GenerateBurst = 5

	// ConnectRate limits how often one IP may open WebSocket connections.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware before mounting the API and WebSocket handlers.
func Router(deps *AppDeps) http.Handler {
	generateLimiter := limiter.NewIPRateLimiter(rate.Limit(GenerateRate), GenerateBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Wave Chat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Route("/connection-id", func(conn chi.Router) {
			rateLimitedGenerate := generateLimiter.Middleware(HandleGenerateConnectionID(deps))
			conn.Get("/generate", rateLimitedGenerate.ServeHTTP)
			conn.Post("/validate", HandleValidateConnectionID(deps))
			conn.Post("/register", HandleRegisterCheck(deps))
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
