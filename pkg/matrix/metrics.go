package matrix

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Matrix bot metrics
var (
	// Counter of processed commands by verb
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matrix_commands_processed_total",
			Help: "Total number of processed commands by verb",
		},
		[]string{"command"}, // ping, help, categories, add
	)

	// Counter of messages rejected by the command grammar. Parse
	// failures are user typos, tracked separately from errors.
	parseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matrix_parse_failures_total",
			Help: "Total number of messages rejected by the command parser",
		},
	)

	// Counter of created ledger transactions
	transactionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matrix_transactions_created_total",
			Help: "Total number of ledger transactions created",
		},
	)

	// Counter of errors by type
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matrix_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // add_transaction, list_categories, send_message, send_reaction
	)

	// Histogram of ledger round-trip time
	ledgerRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matrix_ledger_request_duration_seconds",
			Help:    "Duration of ledger backend requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10},
		},
	)
)
