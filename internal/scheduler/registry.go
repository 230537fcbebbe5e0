package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go-teamhub/internal/shared/apperror"
	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/shared/contextutil"

	"go.uber.org/zap"
)

const lockKeyPrefix = "scheduler:lock:"

var (
	ErrUnknownJob = apperror.New(
		apperror.CodeNotFound,
		"unknown job",
		http.StatusNotFound,
	)
	ErrJobFailed = apperror.New(
		apperror.CodeInternalError,
		"job failed",
		http.StatusInternalServerError,
	)
	ErrDuplicateJob = errors.New("job already registered")
	ErrInvalidJob   = errors.New("invalid job definition")
)

type RunResult struct {
	Job     string    `json:"job"`
	FiredAt time.Time `json:"fired_at"`
	Skipped bool      `json:"skipped"`
	Report  any       `json:"report,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Registry holds the scheduled jobs and runs them off an injected clock.
type Registry struct {
	clock   clock.Clock
	logger  *zap.Logger
	locker  Locker
	lockTTL time.Duration

	mu     sync.RWMutex
	jobs   []Job
	byName map[string]int
}

func NewRegistry(clk clock.Clock, logger ...*zap.Logger) *Registry {
	l := zap.L().Named("scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler")
	}
	return &Registry{clock: clk, logger: l, byName: map[string]int{}}
}

// WithLocker makes every scheduled run claim its fire time first.
func (r *Registry) WithLocker(locker Locker, ttl time.Duration) *Registry {
	r.locker = locker
	r.lockTTL = ttl
	return r
}

func (r *Registry) Register(job Job) error {
	if job.Name == "" || job.Run == nil ||
		job.Hour < 0 || job.Hour > 23 || job.Minute < 0 || job.Minute > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}
	if job.Days == nil {
		job.Days = Daily
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[job.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateJob, job.Name)
	}
	r.byName[job.Name] = len(r.jobs)
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *Registry) Jobs() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

type firing struct {
	job   Job
	at    time.Time
	order int
}

// RunDue runs every fire time in (from, to] in chronological order, jobs
// sharing a fire time in registration order.
func (r *Registry) RunDue(ctx context.Context, from, to time.Time) []RunResult {
	var due []firing
	for i, job := range r.Jobs() {
		for at := NextFire(job, from); !at.IsZero() && !at.After(to); at = NextFire(job, at) {
			due = append(due, firing{job: job, at: at, order: i})
		}
	}
	sort.SliceStable(due, func(a, b int) bool {
		if !due[a].at.Equal(due[b].at) {
			return due[a].at.Before(due[b].at)
		}
		return due[a].order < due[b].order
	})

	results := make([]RunResult, 0, len(due))
	for _, f := range due {
		results = append(results, r.run(ctx, f.job, f.at, true))
	}
	return results
}

// RunNow runs the named job immediately with the current clock time.
func (r *Registry) RunNow(ctx context.Context, name string) (RunResult, error) {
	r.mu.RLock()
	idx, ok := r.byName[name]
	var job Job
	if ok {
		job = r.jobs[idx]
	}
	r.mu.RUnlock()
	if !ok {
		return RunResult{}, ErrUnknownJob
	}

	res := r.run(ctx, job, r.clock.Now(), false)
	if res.Error != "" {
		return res, ErrJobFailed.WithCause(errors.New(res.Error))
	}
	return res, nil
}

// Start fires jobs as the clock reaches their times until ctx is done.
func (r *Registry) Start(ctx context.Context) {
	r.logger.Info("scheduler started", zap.Int("jobs", len(r.Jobs())))
	last := r.clock.Now()
	for {
		next, ok := r.nextAfter(last)
		if !ok {
			<-ctx.Done()
			return
		}

		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopped")
			return
		case <-r.clock.After(next.Sub(r.clock.Now())):
		}

		now := r.clock.Now()
		r.RunDue(ctx, last, now)
		last = now
	}
}

func (r *Registry) nextAfter(t time.Time) (time.Time, bool) {
	var next time.Time
	for _, job := range r.Jobs() {
		at := NextFire(job, t)
		if at.IsZero() {
			continue
		}
		if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	return next, !next.IsZero()
}

func (r *Registry) run(ctx context.Context, job Job, at time.Time, scheduled bool) (res RunResult) {
	res = RunResult{Job: job.Name, FiredAt: at}
	log := r.logger.With(zap.String("job", job.Name), zap.Time("fired_at", at))

	if scheduled && r.locker != nil {
		key := lockKeyPrefix + job.Name + ":" + at.Format("200601021504")
		acquired, err := r.locker.Acquire(ctx, key, r.lockTTL)
		switch {
		case err != nil:
			log.Warn("job lock unavailable, running unguarded", zap.Error(err))
		case !acquired:
			log.Info("job already claimed by another instance")
			res.Skipped = true
			return res
		}
	}

	ctx = contextutil.WithJob(ctx, job.Name)
	ctx = contextutil.WithLogger(ctx, log)

	defer func() {
		if p := recover(); p != nil {
			res.Error = fmt.Sprintf("panic: %v", p)
			log.Error("job panicked", zap.Any("panic", p))
		}
	}()

	started := time.Now()
	report, err := job.Run(ctx, at)
	res.Report = report
	if err != nil {
		res.Error = err.Error()
		log.Error("job failed", zap.Duration("took", time.Since(started)), zap.Error(err))
		return res
	}
	log.Info("job finished", zap.Duration("took", time.Since(started)))
	return res
}
