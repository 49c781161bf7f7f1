package job

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/events"
	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/visualization"
	"github.com/stretchr/testify/require"
)

const validMindmapReply = "```json\n" +
	`{"title": "OAuth2 overview", "children": [{"title": "Roles", "children": []}]}` +
	"\n```"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseBackoff:    time.Millisecond,
		AttemptTimeout: time.Second,
		Expiry:         time.Hour,
		SweepInterval:  time.Hour,
		MaxConcurrent:  2,
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingEmitter keeps every event it receives.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.JobEvent
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.JobEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEmitter) typesFor(jobID string) []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.EventType
	for _, e := range r.events {
		if e.JobID == jobID {
			out = append(out, e.Type)
		}
	}
	return out
}

// blockingStrategy blocks in Generate until released or its context ends.
type blockingStrategy struct {
	started     chan struct{}
	startedOnce sync.Once
	release     chan struct{}
}

func newBlockingStrategy() *blockingStrategy {
	return &blockingStrategy{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingStrategy) Kind() domain.Kind { return domain.KindMindmap }

func (s *blockingStrategy) Generate(
	ctx context.Context,
	_ string,
	_ domain.GenerationOptions,
) (*domain.GenerationResult, error) {
	s.startedOnce.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return &domain.GenerationResult{
			Kind:     domain.KindMindmap,
			Content:  "# Released\n## Branch",
			Metadata: map[string]any{domain.MetaTotalNodes: 2},
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *blockingStrategy) ValidateContent(string) bool { return true }

func singleStrategyRegistry(t *testing.T, strategy visualization.Strategy) *visualization.Registry {
	t.Helper()
	registry, err := visualization.NewRegistry(visualization.Registration{
		Kind: strategy.Kind(),
		New:  func(visualization.ModelHandle) visualization.Strategy { return strategy },
	})
	require.NoError(t, err)
	return registry
}

func defaultRegistry(t *testing.T) *visualization.Registry {
	t.Helper()
	composer, err := prompt.NewComposer(nil)
	require.NoError(t, err)
	return visualization.DefaultRegistry(composer, testLogger())
}

// waitForTerminal polls until the job reaches a terminal status.
func waitForTerminal(t *testing.T, o *Orchestrator, id string) Job {
	t.Helper()
	var last Job
	require.Eventually(t, func() bool {
		j, err := o.Status(context.Background(), id)
		if err != nil {
			return false
		}
		last = j
		return j.Status.IsTerminal()
	}, 5*time.Second, 2*time.Millisecond, "job %s never reached a terminal status", id)
	return last
}
