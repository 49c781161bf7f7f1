// Package anthropic adapts the Anthropic messages API to the
// generation.Generator interface.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/pagination"
	"github.com/phrazzld/vizgen/internal/config"
	"github.com/phrazzld/vizgen/internal/generation"
)

// defaultMaxTokens is used when the caller does not bound the output. The
// messages API requires an explicit limit.
const defaultMaxTokens = 8192

const (
	modelPageSize = 100
	maxModelPages = 20
)

type messagesAPI interface {
	New(
		ctx context.Context,
		body anthropicsdk.MessageNewParams,
		opts ...option.RequestOption,
	) (*anthropicsdk.Message, error)
}

type modelsAPI interface {
	List(
		ctx context.Context,
		query anthropicsdk.ModelListParams,
		opts ...option.RequestOption,
	) (*pagination.Page[anthropicsdk.ModelInfo], error)
}

// Generator calls the Anthropic messages API with a single user turn.
type Generator struct {
	logger   *slog.Logger
	messages messagesAPI
	models   modelsAPI
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
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropicsdk.NewClient(opts...)
	g := newGenerator(logger, &client.Messages)
	g.models = &client.Models
	return g, nil
}

func newGenerator(logger *slog.Logger, messages messagesAPI) *Generator {
	return &Generator{
		logger:   logger.With("provider", config.ProviderAnthropic),
		messages: messages,
	}
}

// Generate implements generation.Generator.
func (g *Generator) Generate(
	ctx context.Context,
	modelID string,
	prompt string,
	cfg generation.Config,
) (string, error) {
	maxTokens := int64(defaultMaxTokens)
	if cfg.MaxOutputTokens > 0 {
		maxTokens = int64(cfg.MaxOutputTokens)
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(modelID),
		MaxTokens: maxTokens,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
		Temperature: anthropicsdk.Float(cfg.Temperature),
	}

	msg, err := g.messages.New(ctx, params)
	if err != nil {
		classified := classifyError(err)
		g.logger.WarnContext(ctx, "Anthropic API call failed",
			"model", modelID,
			"transient", generation.IsTransient(classified),
			"error", err)
		return "", classified
	}

	return extractText(msg)
}

// ListModels returns the ids of the models visible to the API key, newest first.
func (g *Generator) ListModels(ctx context.Context) ([]string, error) {
	if g.models == nil {
		return nil, fmt.Errorf("%w: model listing is not configured", generation.ErrInvalidConfig)
	}

	var ids []string
	params := anthropicsdk.ModelListParams{Limit: anthropicsdk.Int(modelPageSize)}
	for range maxModelPages {
		page, err := g.models.List(ctx, params)
		if err != nil {
			classified := classifyError(err)
			g.logger.WarnContext(ctx, "Anthropic model listing failed",
				"transient", generation.IsTransient(classified),
				"error", err)
			return nil, classified
		}
		if page == nil {
			break
		}

		for _, m := range page.Data {
			ids = append(ids, m.ID)
		}
		if !page.HasMore || page.LastID == "" {
			break
		}
		params.AfterID = anthropicsdk.String(page.LastID)
	}
	return ids, nil
}

func extractText(msg *anthropicsdk.Message) (string, error) {
	if msg == nil {
		return "", fmt.Errorf("%w: nil message", generation.ErrEmptyResponse)
	}
	if string(msg.StopReason) == "refusal" {
		return "", fmt.Errorf("%w: model refused the request", generation.ErrContentBlocked)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropicsdk.TextBlock); ok {
			sb.WriteString(b.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrEmptyResponse)
	}
	return sb.String(), nil
}

func classifyError(err error) error {
	var apiErr *anthropicsdk.Error
	if errors.As(err, &apiErr) {
		return generation.Classify(err, apiErr.StatusCode)
	}
	return generation.Classify(err, 0)
}
