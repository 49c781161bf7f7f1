// Package openai adapts the OpenAI chat completions API to the
// generation.Generator interface.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/pagination"
	"github.com/phrazzld/vizgen/internal/config"
	"github.com/phrazzld/vizgen/internal/generation"
)

// completionsAPI is the subset of the SDK client used by the generator.
type completionsAPI interface {
	New(
		ctx context.Context,
		body openaisdk.ChatCompletionNewParams,
		opts ...option.RequestOption,
	) (*openaisdk.ChatCompletion, error)
}

type modelsAPI interface {
	List(ctx context.Context, opts ...option.RequestOption) (*pagination.Page[openaisdk.Model], error)
}

// Generator calls OpenAI chat completions with a single user message.
type Generator struct {
	logger      *slog.Logger
	completions completionsAPI
	models      modelsAPI
}

var (
	_ generation.Generator   = (*Generator)(nil)
	_ generation.ModelLister = (*Generator)(nil)
)

// NewGenerator creates a Generator from cfg.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		// Retries are owned by the job orchestrator.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openaisdk.NewClient(opts...)
	g := newGenerator(logger, &client.Chat.Completions)
	g.models = &client.Models
	return g, nil
}

func newGenerator(logger *slog.Logger, completions completionsAPI) *Generator {
	return &Generator{
		logger:      logger.With("provider", config.ProviderOpenAI),
		completions: completions,
	}
}

// Generate implements generation.Generator.
func (g *Generator) Generate(
	ctx context.Context,
	modelID string,
	prompt string,
	cfg generation.Config,
) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(modelID),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature: openaisdk.Float(cfg.Temperature),
	}
	if cfg.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openaisdk.Int(int64(cfg.MaxOutputTokens))
	}

	completion, err := g.completions.New(ctx, params)
	if err != nil {
		classified := classifyError(err)
		g.logger.WarnContext(ctx, "OpenAI API call failed",
			"model", modelID,
			"transient", generation.IsTransient(classified),
			"error", err)
		return "", classified
	}

	return extractText(completion)
}

// ListModels returns the ids of the models visible to the API key.
func (g *Generator) ListModels(ctx context.Context) ([]string, error) {
	if g.models == nil {
		return nil, fmt.Errorf("%w: model listing is not configured", generation.ErrInvalidConfig)
	}

	page, err := g.models.List(ctx)
	if err != nil {
		classified := classifyError(err)
		g.logger.WarnContext(ctx, "OpenAI model listing failed",
			"transient", generation.IsTransient(classified),
			"error", err)
		return nil, classified
	}
	if page == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func extractText(completion *openaisdk.ChatCompletion) (string, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrEmptyResponse)
	}

	choice := completion.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: completion stopped by content filter", generation.ErrContentBlocked)
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrEmptyResponse)
	}
	return choice.Message.Content, nil
}

func classifyError(err error) error {
	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) {
		return generation.Classify(err, apiErr.StatusCode)
	}
	return generation.Classify(err, 0)
}
