// Package slo derives service level indicators from the HTTP metrics and
// publishes them as gauges next to their targets.
package slo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"articles-admin/internal/observability/metrics"
)

// Targets.
const (
	AvailabilitySLO = 99.9
	LatencyP95SLO   = 0.200
	LatencyP99SLO   = 0.500
	ErrorRateSLO    = 0.001
)

var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Availability ratio (0-1) since process start, target: 0.999",
	})
	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Estimated p95 latency in seconds, target: 0.200",
	})
	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Estimated p99 latency in seconds, target: 0.500",
	})
	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "5xx ratio (0-1) since process start, target: 0.001",
	})
)

// Snapshot holds indicators computed from one gather.
type Snapshot struct {
	Requests     float64
	ServerErrors float64
	P95          float64
	P99          float64
}

// Availability returns the non-5xx ratio, 1 when nothing was served.
func (s Snapshot) Availability() float64 {
	if s.Requests == 0 {
		return 1
	}
	return (s.Requests - s.ServerErrors) / s.Requests
}

// ErrorRate returns the 5xx ratio, 0 when nothing was served.
func (s Snapshot) ErrorRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return s.ServerErrors / s.Requests
}

// Update gathers from g, computes a Snapshot and sets the SLO gauges.
func Update(g prometheus.Gatherer) (Snapshot, error) {
	families, err := g.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gather metrics: %w", err)
	}
	s := FromFamilies(families)

	SLOAvailability.Set(s.Availability())
	SLOErrorRate.Set(s.ErrorRate())
	SLOLatencyP95.Set(s.P95)
	SLOLatencyP99.Set(s.P99)
	return s, nil
}

// FromFamilies computes a Snapshot from gathered metric families.
func FromFamilies(families []*dto.MetricFamily) Snapshot {
	var s Snapshot
	for _, mf := range families {
		switch mf.GetName() {
		case metrics.HTTPRequestsTotalName:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				s.Requests += v
				if strings.HasPrefix(label(m, "status"), "5") {
					s.ServerErrors += v
				}
			}
		case metrics.HTTPRequestDurationName:
			buckets, total := mergeBuckets(mf.GetMetric())
			s.P95 = quantile(0.95, buckets, total)
			s.P99 = quantile(0.99, buckets, total)
		}
	}
	return s
}

type bucket struct {
	upper      float64
	cumulative float64
}

func mergeBuckets(ms []*dto.Metric) ([]bucket, float64) {
	byBound := map[float64]float64{}
	var total float64
	for _, m := range ms {
		h := m.GetHistogram()
		total += float64(h.GetSampleCount())
		for _, b := range h.GetBucket() {
			byBound[b.GetUpperBound()] += float64(b.GetCumulativeCount())
		}
	}

	out := make([]bucket, 0, len(byBound))
	for ub, c := range byBound {
		out = append(out, bucket{upper: ub, cumulative: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].upper < out[j].upper })
	return out, total
}

// quantile interpolates linearly inside the bucket holding rank q*total,
// the way histogram_quantile does. Ranks beyond the last finite bound
// return that bound.
func quantile(q float64, buckets []bucket, total float64) float64 {
	if total == 0 || len(buckets) == 0 {
		return 0
	}
	rank := q * total
	lower, prevCount := 0.0, 0.0
	for _, b := range buckets {
		if math.IsInf(b.upper, 1) {
			break
		}
		if b.cumulative >= rank {
			inBucket := b.cumulative - prevCount
			if inBucket == 0 {
				return b.upper
			}
			return lower + (b.upper-lower)*(rank-prevCount)/inBucket
		}
		lower, prevCount = b.upper, b.cumulative
	}
	return lower
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
