// Package jobs runs the discover, sync and provision jobs and produces
// their status records.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/domain/report"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/logging"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/botsync/internal/shared/id"
	"github.com/GriffinCanCode/botsync/internal/shared/paging"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// Job names
const (
	Discover  = "discover"
	Sync      = "sync"
	Provision = "provision"
)

var (
	// ErrUnknownJob is returned for a job name the runner does not know.
	ErrUnknownJob = errors.New("unknown job")
	// ErrBusy is returned when another job is still running.
	ErrBusy = errors.New("a job is already running")
)

// Status is the record a job returns on success.
type Status struct {
	StatusCode int `json:"statusCode" yaml:"statusCode"`
	Body       any `json:"body" yaml:"body"`
}

// Body is the status body of the sync and provision jobs.
type Body struct {
	Message string         `json:"message" yaml:"message"`
	Report  *report.Report `json:"report" yaml:"report"`
}

// Run describes the most recent run of a job.
type Run struct {
	Job       string        `json:"job" yaml:"job"`
	RunID     id.RunID      `json:"runId" yaml:"runId"`
	TraceID   id.TraceID    `json:"traceId" yaml:"traceId"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Status    *Status       `json:"status,omitempty" yaml:"status,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Discoverer yields resolved bot targets.
type Discoverer interface {
	Discover(ctx context.Context) iter.Seq2[types.Target, error]
}

// Syncer writes targets to the registry.
type Syncer interface {
	Sync(ctx context.Context, targets iter.Seq2[types.Target, error]) (*report.Report, error)
}

// Provisioner upserts alarms from the registry.
type Provisioner interface {
	Provision(ctx context.Context) (*report.Report, error)
}

// Deps holds the stages the jobs are built from.
type Deps struct {
	Discoverer  Discoverer
	Syncer      Syncer
	Provisioner Provisioner
	// AliasName appears in the sync status message
	AliasName string
}

type jobFunc func(ctx context.Context) (Status, error)

// Runner runs at most one job at a time and remembers the last run of
// each job.
type Runner struct {
	jobs    map[string]jobFunc
	names   []string
	logger  *logging.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer

	running sync.Mutex

	mu   sync.RWMutex
	last map[string]Run
}

// NewRunner creates a runner for the three jobs.
func NewRunner(deps Deps, logger *logging.Logger, metrics *monitoring.Metrics, tracer *tracing.Tracer) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if deps.AliasName == "" {
		deps.AliasName = "PROD"
	}

	r := &Runner{
		names:   []string{Discover, Sync, Provision},
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		last:    make(map[string]Run),
	}
	r.jobs = map[string]jobFunc{
		Discover:  deps.discover,
		Sync:      deps.sync,
		Provision: deps.provision,
	}
	return r
}

// Names returns the job names in pipeline order.
func (r *Runner) Names() []string {
	return append([]string(nil), r.names...)
}

// Run executes the named job. It returns ErrUnknownJob or ErrBusy without
// running anything, and any other error when the job itself aborted.
func (r *Runner) Run(ctx context.Context, name string) (Status, error) {
	job, ok := r.jobs[name]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	if !r.running.TryLock() {
		return Status{}, ErrBusy
	}
	defer r.running.Unlock()

	runID := id.NewRunID()
	logger := r.logger.ForJob(name, runID.String())

	var span *tracing.Span
	if r.tracer != nil {
		span, ctx = r.tracer.StartSpan(ctx, "job."+name)
		span.SetTag("job", name)
		span.SetTag("run_id", runID.String())
	}

	logger.Info("Job started")
	start := time.Now()

	status, err := job(ctx)
	duration := time.Since(start)

	r.metrics.RecordJobRun(name, err, duration)
	run := Run{
		Job:       name,
		RunID:     runID,
		TraceID:   tracing.GetTraceID(ctx),
		StartedAt: start,
		Duration:  duration,
	}

	if err != nil {
		run.Error = err.Error()
		logger.Error("Job failed", zap.Duration("duration", duration), zap.Error(err))
	} else {
		run.Status = &status
		logger.Info("Job finished", zap.Duration("duration", duration))
	}

	if span != nil {
		span.SetStatus(status.StatusCode, err)
		r.tracer.End(span)
	}

	r.mu.Lock()
	r.last[name] = run
	r.mu.Unlock()

	return status, err
}

// Last returns the most recent run of each job that has run, in pipeline
// order.
func (r *Runner) Last() []Run {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]Run, 0, len(r.last))
	for _, name := range r.names {
		if run, ok := r.last[name]; ok {
			runs = append(runs, run)
		}
	}
	return runs
}

func (d Deps) discover(ctx context.Context) (Status, error) {
	targets, err := paging.Collect(d.Discoverer.Discover(ctx))
	if err != nil {
		return Status{}, fmt.Errorf("discover bots: %w", err)
	}
	if targets == nil {
		targets = []types.Target{}
	}
	return Status{StatusCode: http.StatusOK, Body: targets}, nil
}

func (d Deps) sync(ctx context.Context) (Status, error) {
	rep, err := d.Syncer.Sync(ctx, d.Discoverer.Discover(ctx))
	if err != nil {
		return Status{}, err
	}
	return Status{
		StatusCode: http.StatusOK,
		Body: Body{
			Message: fmt.Sprintf("Registry entries created/updated for bots with alias %q.", d.AliasName),
			Report:  rep,
		},
	}, nil
}

func (d Deps) provision(ctx context.Context) (Status, error) {
	rep, err := d.Provisioner.Provision(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		StatusCode: http.StatusOK,
		Body: Body{
			Message: "CloudWatch alarms created/updated.",
			Report:  rep,
		},
	}, nil
}
