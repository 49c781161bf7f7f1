package job

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/events"
	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/phrazzld/vizgen/internal/redact"
	"github.com/phrazzld/vizgen/internal/visualization"
	"golang.org/x/sync/semaphore"
)

// StrategyFactory resolves visualization kinds to strategies.
// *visualization.Registry implements it.
type StrategyFactory interface {
	Resolve(kind string) (domain.Kind, error)
	Create(kind domain.Kind, model visualization.ModelHandle) (visualization.Strategy, error)
	SupportedKinds() []domain.Kind
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEmitter publishes lifecycle events to emitter.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(o *Orchestrator) {
		o.emitter = emitter
	}
}

// errAbandoned signals that the job was evicted while its task was running.
var errAbandoned = errors.New("job evicted during execution")

// Orchestrator accepts submissions and runs each job in its own goroutine.
type Orchestrator struct {
	store      *Store
	strategies StrategyFactory
	model      visualization.ModelHandle
	cfg        Config
	logger     *slog.Logger
	emitter    events.EventEmitter
	slots      *semaphore.Weighted

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu        sync.Mutex
	stopped   bool
	startOnce sync.Once
}

// NewOrchestrator creates an Orchestrator. Zero config fields take their defaults.
func NewOrchestrator(
	store *Store,
	strategies StrategyFactory,
	model visualization.ModelHandle,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) *Orchestrator {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		store:      store,
		strategies: strategies,
		model:      model,
		cfg:        cfg,
		logger:     logger.With("component", "job_orchestrator"),
		slots:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		ctx:        ctx,
		cancelFunc: cancel,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SupportedKinds lists the kinds Submit accepts.
func (o *Orchestrator) SupportedKinds() []domain.Kind {
	return o.strategies.SupportedKinds()
}

// Submit validates the request, stores a pending job and schedules it.
// It never waits for generation.
func (o *Orchestrator) Submit(
	ctx context.Context,
	question string,
	kind string,
	opts domain.GenerationOptions,
) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	resolved, err := o.strategies.Resolve(kind)
	if err != nil {
		return "", err
	}

	normalized, err := opts.Normalize()
	if err != nil {
		return "", err
	}

	now := o.store.Now()
	j := Job{
		ID:        uuid.NewString(),
		Kind:      resolved,
		Question:  question,
		Options:   normalized,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(o.cfg.Expiry),
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return "", ErrStopped
	}
	if err := o.store.Insert(j); err != nil {
		return "", err
	}

	o.logger.InfoContext(ctx, "job submitted",
		"job_id", j.ID,
		"visualization_type", resolved.String(),
		"complexity", normalized.Complexity,
		"max_depth", normalized.MaxDepth)
	o.emit(ctx, events.JobSubmitted, j.ID, resolved, 0, nil)

	o.wg.Add(1)
	go o.run(j.ID, resolved, question, normalized)

	return j.ID, nil
}

// Status returns a snapshot of the job, or ErrJobNotFound.
func (o *Orchestrator) Status(_ context.Context, id string) (Job, error) {
	return o.store.Get(id)
}

// Start launches the periodic eviction sweep. Calling it more than once has no effect.
func (o *Orchestrator) Start() {
	o.startOnce.Do(func() {
		o.wg.Add(1)
		go o.sweepLoop()
	})
}

// Stop cancels in-flight jobs and the sweep loop, then waits for every
// goroutine to return. Jobs interrupted by Stop are marked failed.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	o.stopped = true
	o.mu.Unlock()

	o.cancelFunc()
	o.wg.Wait()
}

// Sweep removes every job expired at now and returns how many were removed.
func (o *Orchestrator) Sweep(now time.Time) int {
	removed := o.store.DeleteExpired(now)
	for _, id := range removed {
		o.emit(o.ctx, events.JobEvicted, id, "", 0, nil)
	}
	if len(removed) > 0 {
		o.logger.Info("evicted expired jobs", "count", len(removed))
	}
	return len(removed)
}

func (o *Orchestrator) sweepLoop() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.ctx.Done():
			return
		case <-ticker.C:
			o.Sweep(o.store.Now())
		}
	}
}

// run is the background task of a single job.
func (o *Orchestrator) run(id string, kind domain.Kind, question string, opts domain.GenerationOptions) {
	defer o.wg.Done()

	ctx := o.ctx
	logger := o.logger.With("job_id", id, "visualization_type", kind.String())

	if err := o.slots.Acquire(ctx, 1); err != nil {
		o.finish(ctx, logger, id, kind, nil, err)
		return
	}
	defer o.slots.Release(1)

	if err := o.update(id, func(j *Job) error {
		return j.transition(StatusRunning, o.store.Now())
	}); err != nil {
		o.logUpdateError(logger, err)
		return
	}
	logger.DebugContext(ctx, "job running")
	o.emit(ctx, events.JobStarted, id, kind, 0, nil)

	strategy, err := o.strategies.Create(kind, o.model)
	if err != nil {
		o.finish(ctx, logger, id, kind, nil, err)
		return
	}

	result, err := o.execute(ctx, logger, id, strategy, question, opts)
	if errors.Is(err, errAbandoned) {
		logger.InfoContext(ctx, "job evicted during execution; abandoning")
		return
	}
	o.finish(ctx, logger, id, kind, result, err)
}

// execute runs strategy with the retry policy.
func (o *Orchestrator) execute(
	ctx context.Context,
	logger *slog.Logger,
	id string,
	strategy visualization.Strategy,
	question string,
	opts domain.GenerationOptions,
) (*domain.GenerationResult, error) {
	var lastErr error

	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		if err := o.update(id, func(j *Job) error {
			j.Attempts = attempt
			j.UpdatedAt = o.store.Now()
			return nil
		}); err != nil {
			return nil, errAbandoned
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.AttemptTimeout)
		result, err := strategy.Generate(attemptCtx, question, opts)
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			logger.InfoContext(ctx, "attempt succeeded", "attempt", attempt)
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		transient := generation.IsTransient(err) || timedOut
		if !transient || attempt == o.cfg.MaxAttempts {
			o.emit(ctx, events.JobAttemptFailed, id, strategy.Kind(), attempt, events.AttemptFailure{
				Transient: transient,
				Error:     redact.Error(err),
			})
			logger.WarnContext(ctx, "attempt failed; giving up",
				"attempt", attempt,
				"transient", transient,
				"error", redact.Error(err))
			return nil, err
		}

		backoff := Backoff(o.cfg.BaseBackoff, attempt)
		o.emit(ctx, events.JobAttemptFailed, id, strategy.Kind(), attempt, events.AttemptFailure{
			Transient: true,
			Backoff:   backoff,
			Error:     redact.Error(err),
		})
		logger.WarnContext(ctx, "transient failure; retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", redact.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

// finish records the terminal outcome. A nil err means success.
func (o *Orchestrator) finish(
	ctx context.Context,
	logger *slog.Logger,
	id string,
	kind domain.Kind,
	result *domain.GenerationResult,
	err error,
) {
	now := o.store.Now()

	if err == nil {
		if uerr := o.update(id, func(j *Job) error { return j.succeed(result, now) }); uerr != nil {
			o.logUpdateError(logger, uerr)
			return
		}
		logger.InfoContext(ctx, "job succeeded", "content_length", len(result.Content))
		o.emit(ctx, events.JobSucceeded, id, kind, 0, nil)
		return
	}

	summary := SummarizeError(err)
	if uerr := o.update(id, func(j *Job) error {
		// Jobs interrupted before they started still move through running.
		if j.Status == StatusPending {
			if terr := j.transition(StatusRunning, now); terr != nil {
				return terr
			}
		}
		return j.fail(summary, now)
	}); uerr != nil {
		o.logUpdateError(logger, uerr)
		return
	}

	logger.ErrorContext(ctx, "job failed", "error", redact.Error(err), "summary", summary)
	o.emit(ctx, events.JobFailed, id, kind, 0, map[string]string{"summary": summary})
}

func (o *Orchestrator) update(id string, fn func(*Job) error) error {
	_, err := o.store.Update(id, fn)
	return err
}

func (o *Orchestrator) logUpdateError(logger *slog.Logger, err error) {
	if errors.Is(err, ErrJobNotFound) {
		logger.Info("job evicted before update; abandoning")
		return
	}
	logger.Error("failed to update job", "error", err)
}

func (o *Orchestrator) emit(
	ctx context.Context,
	eventType events.EventType,
	id string,
	kind domain.Kind,
	attempt int,
	payload any,
) {
	if o.emitter == nil {
		return
	}
	event, err := events.NewJobEvent(eventType, id, kind.String(), attempt, payload)
	if err != nil {
		o.logger.Error("failed to build job event", "event_type", eventType, "error", err)
		return
	}
	// Cancelled contexts must not suppress terminal events.
	if err := o.emitter.EmitEvent(context.WithoutCancel(ctx), event); err != nil {
		o.logger.Debug("job event handler failed", "event_type", eventType, "error", err)
	}
}
