package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	charactersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quest_characters_created_total",
		Help: "Total number of successfully created characters.",
	})

	questDeclarationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quest_declarations_total",
		Help: "Total number of quest declarations (including note updates).",
	})

	matchLookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quest_match_lookups_total",
		Help: "Total number of match listing requests.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quest_token_verifications_total",
			Help: "Total number of session token verification attempts by status.",
		},
		[]string{"status"},
	)
)
