package txsender

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSender wraps a Sender and records submission counts and latency.
type MetricsSender struct {
	next     Sender
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetricsSender wraps next. Collectors are registered on reg unless it is nil.
func NewMetricsSender(next Sender, reg prometheus.Registerer) *MetricsSender {
	factory := promauto.With(reg)
	return &MetricsSender{
		next: next,
		total: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandedtoken_transactions_total",
				Help: "Total number of submitted contract transactions",
			},
			[]string{"status"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brandedtoken_transaction_duration_seconds",
				Help:    "Time taken to sign and submit a contract transaction",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// SendTransaction implements Sender with metrics.
func (m *MetricsSender) SendTransaction(ctx context.Context, to common.Address, data []byte, opts *TxOptions) (*types.Transaction, error) {
	start := time.Now()
	tx, err := m.next.SendTransaction(ctx, to, data, opts)
	m.duration.Observe(time.Since(start).Seconds())

	if err != nil {
		m.total.WithLabelValues("error").Inc()
		return nil, err
	}

	m.total.WithLabelValues("success").Inc()
	return tx, nil
}
