package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/vizgen/internal/generation"
)

var (
	_ generation.Generator   = (*MockGenerator)(nil)
	_ generation.ModelLister = (*MockGenerator)(nil)
)

// Step is one scripted reply of a MockGenerator.
type Step struct {
	Text string
	Err  error
}

// Response returns a Step that succeeds with text.
func Response(text string) Step {
	return Step{Text: text}
}

// Failure returns a Step that fails with err.
func Failure(err error) Step {
	return Step{Err: err}
}

// GenerateCall records the arguments of one Generate call.
type GenerateCall struct {
	ModelID string
	Prompt  string
	Config  generation.Config
}

// MockGenerator implements generation.Generator and generation.ModelLister for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, modelID, prompt string, cfg generation.Config) (string, error)

	// Steps are consumed in order when GenerateFn is nil. Once exhausted the
	// last step is repeated.
	Steps []Step

	// Default response values, used when neither GenerateFn nor Steps are set
	Text string
	Err  error

	// Models and ListErr are returned by ListModels
	Models  []string
	ListErr error

	// mu protects the call tracking state for concurrent test cases
	mu    sync.Mutex
	calls []GenerateCall
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	modelID, prompt string,
	cfg generation.Config,
) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{ModelID: modelID, Prompt: prompt, Config: cfg})
	callIndex := len(m.calls) - 1
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, modelID, prompt, cfg)
	}

	if err := ctx.Err(); err != nil {
		return "", generation.Classify(err, 0)
	}

	if len(m.Steps) > 0 {
		step := m.Steps[len(m.Steps)-1]
		if callIndex < len(m.Steps) {
			step = m.Steps[callIndex]
		}
		return step.Text, step.Err
	}

	return m.Text, m.Err
}

// ListModels implements the generation.ModelLister interface
func (m *MockGenerator) ListModels(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, generation.Classify(err, 0)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]string, len(m.Models))
	copy(out, m.Models)
	return out, nil
}

// CallCount returns how many times Generate was called
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls
func (m *MockGenerator) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastPrompt returns the prompt of the most recent call, or "" if none
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1].Prompt
}

// NewMockGeneratorWithText creates a MockGenerator that always returns text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that always returns err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// NewMockGeneratorWithSequence creates a MockGenerator that replays steps in order
func NewMockGeneratorWithSequence(steps ...Step) *MockGenerator {
	return &MockGenerator{Steps: steps}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
