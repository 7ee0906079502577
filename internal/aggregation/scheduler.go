// Package aggregation runs the periodic maintenance of the historical tiers: it
// finalizes long-term buckets from detailed samples and prunes detailed
// samples past their retention window.
package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	defaultInterval    = time.Minute
	defaultWorkerCount = 4
	shutdownTimeout    = 30 * time.Second
)

// Store is the per-resource maintenance surface of the ingestion store.
type Store interface {
	RollUpToLongTerm(ctx context.Context, res *resource.Resource, end time.Time) (int, error)
	PruneDetailed(ctx context.Context, res *resource.Resource, now time.Time) (int64, error)
}

// Options controls the cadence and parallelism of the scheduler.
type Options struct {
	Interval    time.Duration
	WorkerCount int

	// DefaultRetention applies to resources whose DetailedRetention is zero.
	// Zero keeps detailed samples forever.
	DefaultRetention time.Duration
}

func (o Options) normalized() Options {
	n := o
	if n.Interval <= 0 {
		n.Interval = defaultInterval
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	return n
}

// CycleResult summarizes one pass over all resources.
type CycleResult struct {
	Resources int
	Buckets   int
	Pruned    int64
	Failed    int
}

// Status describes the most recent cycle for health reporting.
type Status struct {
	Cycles    int64      `json:"cycles"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	Resources int        `json:"resources"`
	Buckets   int        `json:"buckets"`
	Pruned    int64      `json:"pruned"`
	Failed    int        `json:"failed"`
	LastError string     `json:"last_error,omitempty"`
}

// Scheduler rolls detailed samples up into the long-term tier on a fixed
// interval. Each cycle starts from the high-water marks stored on the
// resources; only the outcome of the last cycle is kept.
type Scheduler struct {
	store     Store
	resources storage.ResourceRepository
	opts      Options
	nowFn     func() time.Time

	mu     sync.Mutex
	status Status
}

// NewScheduler creates a scheduler over every resource of the repository.
func NewScheduler(store Store, resources storage.ResourceRepository, opts Options) *Scheduler {
	return &Scheduler{
		store:     store,
		resources: resources,
		opts:      opts.normalized(),
		nowFn:     time.Now,
	}
}

// Start runs a cycle immediately and then once per interval until ctx is
// cancelled. A final cycle runs on shutdown so finished buckets are not left
// waiting for the next start.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting rollup scheduler",
		"interval", s.opts.Interval,
		"workers", s.opts.WorkerCount,
	)

	s.runLogged(ctx)

	for {
		select {
		case <-ticker.C:
			s.runLogged(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			slog.Info("[Scheduler] Running final rollup before shutdown...")
			s.runLogged(shutdownCtx)
			slog.Info("[Scheduler] Final rollup complete")

			return nil
		}
	}
}

func (s *Scheduler) runLogged(ctx context.Context) {
	result, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("[Scheduler] Rollup cycle failed", "error", err)
		return
	}
	if result.Buckets > 0 || result.Pruned > 0 || result.Failed > 0 {
		slog.Info("[Scheduler] Rollup cycle complete",
			"resources", result.Resources,
			"buckets", result.Buckets,
			"pruned", result.Pruned,
			"failed", result.Failed,
		)
	}
}

// RunOnce rolls up and prunes every resource once. A failure on one resource
// is logged and counted; it does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) (CycleResult, error) {
	start := time.Now()
	defer func() { metrics.RollupDurationSeconds.Observe(time.Since(start).Seconds()) }()

	now := s.nowFn()

	resources, err := s.resources.ListResources(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list resources: %w", err)
		s.record(now, CycleResult{}, err)
		return CycleResult{}, err
	}
	var buckets, pruned, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.WorkerCount)

	for i := range resources {
		res := &resources[i]
		if res.DetailedRetention <= 0 {
			res.DetailedRetention = s.opts.DefaultRetention
		}
		if !res.HasLongTerm() && res.DetailedRetention <= 0 {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			n, deleted, err := s.maintain(gctx, res, now)
			buckets.Add(int64(n))
			pruned.Add(deleted)
			if err != nil {
				failed.Add(1)
				slog.Error("[Scheduler] Resource maintenance failed", "resource_id", res.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	result := CycleResult{
		Resources: len(resources),
		Buckets:   int(buckets.Load()),
		Pruned:    pruned.Load(),
		Failed:    int(failed.Load()),
	}
	s.record(now, result, ctx.Err())
	return result, ctx.Err()
}

func (s *Scheduler) record(at time.Time, result CycleResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Status{
		Cycles:    s.status.Cycles + 1,
		LastRun:   &at,
		Resources: result.Resources,
		Buckets:   result.Buckets,
		Pruned:    result.Pruned,
		Failed:    result.Failed,
	}
	if err != nil {
		s.status.LastError = err.Error()
	}
}

// Status returns the outcome of the last cycle. Cycles is zero until the
// first cycle finishes.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Health reports the last cycle and fails when that cycle could not run.
// Per-resource failures are counted but do not fail the check.
func (s *Scheduler) Health(context.Context) (interface{}, error) {
	st := s.Status()
	if st.LastError != "" {
		return st, errors.New(st.LastError)
	}
	return st, nil
}

// maintain rolls up before pruning so retention never outruns the long-term tier.
func (s *Scheduler) maintain(ctx context.Context, res *resource.Resource, now time.Time) (int, int64, error) {
	n, err := s.store.RollUpToLongTerm(ctx, res, now)
	if err != nil {
		return 0, 0, err
	}
	deleted, err := s.store.PruneDetailed(ctx, res, now)
	if err != nil {
		return n, 0, err
	}
	return n, deleted, nil
}
