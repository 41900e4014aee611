package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges for the pairing engine, registered against the default
// Prometheus registerer and exposed on /metrics.
var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_registrations_total",
		Help: "Number of successful first-time registrations.",
	})

	reconnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_reconnections_total",
		Help: "Number of successful session rebinds for known connection IDs.",
	})

	registerFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_register_failures_total",
		Help: "Number of rejected register attempts (bad input or multi-tab).",
	})

	chatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wavechat_chat_requests_total",
		Help: "Number of chat requests by outcome.",
	}, []string{"outcome"})

	sessionsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_sessions_started_total",
		Help: "Number of chat sessions established.",
	})

	messagesRelayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_messages_relayed_total",
		Help: "Number of chat messages relayed between partners.",
	})

	disconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wavechat_disconnects_total",
		Help: "Number of transport disconnects processed.",
	})

	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wavechat_connected_clients",
		Help: "Number of currently attached WebSocket clients.",
	})

	activeChatPairs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wavechat_active_chat_pairs",
		Help: "Number of chat sessions currently in progress.",
	})
)

// Chat request outcomes used as the chatRequestsTotal label.
const (
	requestOutcomeSent          = "sent"
	requestOutcomeNotRegistered = "not_registered"
	requestOutcomeNotFound      = "target_not_found"
	requestOutcomeOffline       = "target_offline"
	requestOutcomeSelf          = "self"
	requestOutcomeBusy          = "target_busy"
)
