// Package stats refreshes the entity count, connection pool and SLO gauges
// on a cron schedule.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"articles-admin/internal/observability/metrics"
	"articles-admin/internal/observability/slo"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_collection_runs_total",
			Help: "Gauge refresh runs by status",
		},
		[]string{"status"}, // success | failure
	)
	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stats_collection_last_success_timestamp",
		Help: "Unix timestamp of the last successful gauge refresh",
	})
)

// Counter reports the number of stored rows of one kind.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Collector gathers the values behind the business and pool gauges.
type Collector struct {
	Articles Counter
	Users    Counter
	// DBStats is optional; nil skips the pool gauges.
	DBStats func() sql.DBStats
	// Gatherer feeds the SLO gauges; nil skips them.
	Gatherer prometheus.Gatherer
	// Timeout bounds one run. Zero means 10s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Collect refreshes every gauge once. Failures of one source do not stop
// the others; they are joined in the returned error.
func (c *Collector) Collect(ctx context.Context) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error

	articles, err := c.Articles.Count(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("count articles: %w", err))
	}
	users, err := c.Users.Count(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("count users: %w", err))
	}
	if len(errs) == 0 {
		metrics.SetEntityCounts(articles, users)
	}

	if c.DBStats != nil {
		metrics.SetDBStats(c.DBStats())
	}

	if c.Gatherer != nil {
		if _, err := slo.Update(c.Gatherer); err != nil {
			errs = append(errs, fmt.Errorf("update slo gauges: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		runsTotal.WithLabelValues("failure").Inc()
		return err
	}
	runsTotal.WithLabelValues("success").Inc()
	lastSuccess.SetToCurrentTime()
	return nil
}

// Run collects once immediately, then on schedule until ctx is cancelled.
// It waits for a running collection to finish before returning.
func (c *Collector) Run(ctx context.Context, schedule string) error {
	logger := c.logger()
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	job := func() {
		start := time.Now()
		if err := c.Collect(ctx); err != nil {
			logger.Warn("stats collection failed", slog.Any("error", err))
			return
		}
		logger.Debug("stats collected", slog.Duration("duration", time.Since(start)))
	}
	if _, err := sched.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("schedule stats collection: %w", err)
	}

	job()
	sched.Start()
	logger.Info("stats collector started", slog.String("schedule", schedule))

	<-ctx.Done()
	<-sched.Stop().Done()
	logger.Info("stats collector stopped")
	return nil
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
