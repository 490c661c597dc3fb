package vendorsync

import (
	"context"
	"strings"
	"time"

	"catalog-reconciler/core/diff"
	"catalog-reconciler/core/errors"
	"catalog-reconciler/core/jobs"
	"catalog-reconciler/core/metrics"
	"catalog-reconciler/core/priority"
	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/feature/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run statuses.
const (
	StatusOK        = "ok"
	StatusUnchanged = "unchanged"
	StatusBusy      = "busy"
	StatusError     = "error"
)

// Reconciler is satisfied by *reconcile.Engine.
type Reconciler interface {
	Reconcile(ctx context.Context, vendor string, scope reconcile.Scope, rows []reconcile.VendorRow, opts reconcile.Options) (reconcile.Stats, error)
}

// Mapper turns changed feed lines into rows.
type Mapper interface {
	Map(lines []string) (MapResult, error)
}

// Job identifies one sync run.
type Job struct {
	Vendor string
	Scope  reconcile.Scope

	DryRun         bool
	ManualOverride bool
	// Full ignores the stored snapshot and processes every line.
	Full bool
}

// Key returns the guard and snapshot key of the job.
func (j Job) Key() string {
	return snapshot.Key(j.Vendor, j.Scope.String())
}

// Result describes a finished run.
type Result struct {
	RunID       string          `json:"run_id"`
	Vendor      string          `json:"vendor"`
	Scope       string          `json:"scope"`
	Status      string          `json:"status"`
	Busy        bool            `json:"busy"`
	DryRun      bool            `json:"dry_run"`
	FullRun     bool            `json:"full_run"`
	Diff        diff.Stats      `json:"diff"`
	Stats       reconcile.Stats `json:"stats"`
	ParseErrors int             `json:"parse_errors"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// Runner executes sync jobs.
type Runner struct {
	guard      jobs.Guard
	snapshots  snapshot.Store
	mapper     Mapper
	reconciler Reconciler
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMetrics records run and diff metrics.
func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a Runner.
func NewRunner(guard jobs.Guard, snapshots snapshot.Store, mapper Mapper, reconciler Reconciler, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		guard:      guard,
		snapshots:  snapshots,
		mapper:     mapper,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes feed for job. A busy job returns a result with Busy set and a
// nil error. Errors are also recorded in the result.
func (r *Runner) Run(ctx context.Context, job Job, feed string) (*Result, error) {
	vendor, err := normalizeVendor(job.Vendor)
	if err != nil {
		return nil, err
	}
	job.Vendor = vendor

	res := &Result{
		RunID:     uuid.NewString(),
		Vendor:    job.Vendor,
		Scope:     job.Scope.String(),
		DryRun:    job.DryRun,
		StartedAt: r.now(),
	}
	l := r.logger.With(
		zap.String("run_id", res.RunID),
		zap.String("vendor", res.Vendor),
		zap.String("scope", res.Scope),
	)

	key := job.Key()
	acquired, err := r.guard.TryAcquire(ctx, key)
	if err != nil {
		return r.fail(l, res, err)
	}
	if !acquired {
		l.Info("Sync already running, skipping")
		res.Busy = true
		return r.finish(res, StatusBusy), nil
	}
	defer func() {
		if err := r.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			l.Warn("Failed to release sync guard", zap.Error(err))
		}
	}()

	previous := r.loadPrevious(ctx, l, job, key)
	res.FullRun = previous == nil

	changes := diff.Compute(previous, feed)
	res.Diff = changes.Stats
	r.metrics.DiffLines(res.Vendor, changes.Stats.TotalLines, changes.Stats.ChangedLines, changes.Stats.AddedLines, changes.Stats.RemovedLines)
	l.Info("Feed compared with previous snapshot",
		zap.Bool("full_run", res.FullRun),
		zap.Int("total_lines", changes.Stats.TotalLines),
		zap.Int("changed_lines", changes.Stats.ChangedLines),
		zap.Int("added_lines", changes.Stats.AddedLines),
		zap.Int("removed_lines", changes.Stats.RemovedLines),
	)

	if !changes.HasChanges {
		if err := r.persist(ctx, job, key, previous, feed); err != nil {
			return r.fail(l, res, err)
		}
		return r.finish(res, StatusUnchanged), nil
	}

	mapped, err := r.mapper.Map(changes.ChangedLines)
	if err != nil {
		return r.fail(l, res, err)
	}
	res.ParseErrors = mapped.ParseErrors
	if mapped.ParseErrors > 0 {
		l.Warn("Some feed lines could not be parsed", zap.Int("parse_errors", mapped.ParseErrors))
	}

	stats, err := r.reconciler.Reconcile(ctx, job.Vendor, job.Scope, mapped.Rows, reconcile.Options{
		DryRun:         job.DryRun,
		ManualOverride: job.ManualOverride,
	})
	stats.RecordsErrors += mapped.ParseErrors
	res.Stats = stats
	if err != nil {
		return r.fail(l, res, err)
	}

	if err := r.persist(ctx, job, key, previous, feed); err != nil {
		return r.fail(l, res, err)
	}
	return r.finish(res, StatusOK), nil
}

func (r *Runner) loadPrevious(ctx context.Context, l *zap.Logger, job Job, key string) *string {
	if job.Full {
		return nil
	}
	previous, err := r.snapshots.Load(ctx, key)
	if err != nil {
		l.Warn("Failed to load previous snapshot, processing full feed", zap.Error(err))
		return nil
	}
	return previous
}

// persist stores feed as the next baseline unless nothing would change.
func (r *Runner) persist(ctx context.Context, job Job, key string, previous *string, feed string) error {
	if job.DryRun || (previous != nil && *previous == feed) {
		return nil
	}
	if err := r.snapshots.Save(ctx, key, feed); err != nil {
		return errors.NewBackingStoreError("save snapshot", err)
	}
	return nil
}

func (r *Runner) finish(res *Result, status string) *Result {
	res.Status = status
	res.FinishedAt = r.now()
	r.metrics.SyncRun(res.Vendor, status)
	return res
}

func (r *Runner) fail(l *zap.Logger, res *Result, err error) (*Result, error) {
	res.Error = err.Error()
	l.Error("Sync run failed", zap.Error(err))
	return r.finish(res, StatusError), err
}

// normalizeVendor lower-cases vendor and rejects slugs that cannot be a single
// snapshot path segment.
func normalizeVendor(vendor string) (string, error) {
	slug, err := priority.NormalizeSlug(vendor)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return "", errors.NewInvalidSlug(vendor)
	}
	return slug, nil
}
