package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesScored tracks scored messages by outcome (clean/salted/error).
	MessagesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saltbot_messages_scored_total",
			Help: "Messages run through the scoring pipeline by outcome",
		},
		[]string{"outcome"},
	)

	// SaltApplied tracks the total salt delta written to the ledger.
	SaltApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saltbot_salt_applied_total",
			Help: "Sum of all salt deltas applied to the ledger",
		},
	)

	// CommandsTotal tracks chat command invocations by command and status.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saltbot_commands_total",
			Help: "Chat command invocations by command and status",
		},
		[]string{"command", "status"},
	)

	// StoreFailures tracks failed ledger or settings store operations.
	StoreFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saltbot_store_failures_total",
			Help: "Failed ledger or settings store operations",
		},
	)
)
