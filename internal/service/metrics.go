package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auroramart_reconcile_batches_total",
			Help: "Order item reconcile batches by outcome.",
		},
		[]string{"outcome"},
	)

	reconcileSkippedLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auroramart_reconcile_skipped_lines_total",
			Help: "Directive lines skipped during reconciliation.",
		},
	)
)

const (
	outcomeCommitted = "committed"
	outcomeRejected  = "rejected"
	outcomeConflict  = "conflict"
	outcomeError     = "error"
)
