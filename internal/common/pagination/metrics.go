package pagination

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a list request.
const (
	OutcomeServed  = "served"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	listRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_list_requests_total",
			Help: "Paginated list requests by outcome and requested page size.",
		},
		[]string{"outcome", "limit"},
	)

	listDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "admin_list_duration_seconds",
			Help:    "Time to serve a page, failures included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	listReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "admin_list_returned_items",
			Help:    "Items returned per served page.",
			Buckets: []float64{0, 1, 6, 10, 25, 50, 100},
		},
	)
)

// Observation describes one handled list request.
type Observation struct {
	Params   Params
	Returned int
	Total    int64
	Duration time.Duration
	Err      error
}

// Observe records o under outcome and logs it: served pages at Info,
// rejected or failed ones at Warn.
func Observe(logger *slog.Logger, outcome string, o Observation) {
	listRequests.WithLabelValues(outcome, limitBucket(o.Params.Limit)).Inc()
	listDuration.Observe(o.Duration.Seconds())

	attrs := []any{
		slog.Int("page", o.Params.Page),
		slog.Int("limit", o.Params.Limit),
		slog.Duration("duration", o.Duration),
	}
	if outcome == OutcomeServed {
		listReturned.Observe(float64(o.Returned))
		logger.Info("page served", append(attrs,
			slog.Int("returned", o.Returned),
			slog.Int64("total", o.Total))...)
		return
	}
	if o.Err != nil {
		attrs = append(attrs, slog.String("error", o.Err.Error()))
	}
	logger.Warn("page not served", append(attrs, slog.String("outcome", outcome))...)
}

// limitBucket keeps the label set small whatever limit clients send.
func limitBucket(limit int) string {
	switch {
	case limit < 1:
		return "invalid"
	case limit <= 10:
		return "1-10"
	case limit <= 50:
		return "11-50"
	default:
		return "51+"
	}
}
