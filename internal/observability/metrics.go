package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts successful account creations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total number of successful signups",
	})

	// LoginsTotal counts login attempts by outcome ("success" or "failure").
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// FollowsTotal counts follow-graph mutations by action ("follow" or "unfollow").
	FollowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follows_total",
		Help: "Total number of follow graph mutations by action",
	}, []string{"action"})

	// MessagesTotal counts message store mutations by action ("create" or "delete").
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_messages_total",
		Help: "Total number of message mutations by action",
	}, []string{"action"})

	// ActiveSessions is the gauge of live server-side sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "warbler_active_sessions",
		Help: "Number of active server-side sessions",
	})
)
