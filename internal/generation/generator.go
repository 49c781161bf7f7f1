package generation

import "context"

// Config carries per-request sampling settings.
type Config struct {
	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64

	// MaxOutputTokens caps the response length. Zero leaves the provider default.
	MaxOutputTokens int
}

// Generator defines the interface for sending a prompt to an external
// text-generation model. This interface is the only contract the rest of the
// application has with the model; callers make no assumption about the
// provider's protocol.
type Generator interface {
	// Generate sends prompt to the model identified by modelID and returns the
	// raw response text. Errors wrap one of ErrRateLimited, ErrOverloaded,
	// ErrTransientNetwork, ErrFatal (or ErrContentBlocked, which is fatal).
	Generate(ctx context.Context, modelID, prompt string, cfg Config) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, modelID, prompt string, cfg Config) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, modelID, prompt string, cfg Config) (string, error) {
	return f(ctx, modelID, prompt, cfg)
}

// ModelLister is implemented by generators that can enumerate the models the
// configured credentials may call. Errors are classified like Generate errors.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}
