package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vizgen/internal/config"
	"github.com/phrazzld/vizgen/internal/generation"
	"google.golang.org/genai"
)

// modelsAPI is the subset of the genai client used by the generator.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)

	List(ctx context.Context, config *genai.ListModelsConfig) (genai.Page[genai.Model], error)
}

const (
	// generateContentAction marks models that accept GenerateContent calls.
	generateContentAction = "generateContent"

	// maxModelPages bounds pagination when listing models.
	maxModelPages = 20
)

// Generator implements the generation.Generator interface using
// Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	models modelsAPI
}

var (
	_ generation.Generator   = (*Generator)(nil)
	_ generation.ModelLister = (*Generator)(nil)
)

// NewGenerator creates a new Generator backed by the Gemini API.
//
// Returns an error wrapping generation.ErrInvalidConfig if the API key is
// missing or the client cannot be created.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, client.Models), nil
}

func newGenerator(logger *slog.Logger, models modelsAPI) *Generator {
	return &Generator{
		logger: logger.With("provider", config.ProviderGemini),
		models: models,
	}
}

// Generate sends prompt to modelID and returns the concatenated text of the
// first candidate.
func (g *Generator) Generate(
	ctx context.Context,
	modelID string,
	prompt string,
	cfg generation.Config,
) (string, error) {
	temperature := float32(cfg.Temperature)
	contentConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if cfg.MaxOutputTokens > 0 {
		contentConfig.MaxOutputTokens = int32(cfg.MaxOutputTokens)
	}

	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", modelID,
		"prompt_length", len(prompt),
		"temperature", cfg.Temperature)

	resp, err := g.models.GenerateContent(ctx, modelID, genai.Text(prompt), contentConfig)
	if err != nil {
		classified := classifyError(err)
		g.logger.WarnContext(ctx, "Gemini API call failed",
			"model", modelID,
			"transient", generation.IsTransient(classified),
			"error", err)
		return "", classified
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"model", modelID,
		"response_length", len(text))

	return text, nil
}

// ListModels returns the ids of the models that support content generation,
// without the "models/" resource prefix.
func (g *Generator) ListModels(ctx context.Context) ([]string, error) {
	var (
		names []string
		token string
	)
	for range maxModelPages {
		page, err := g.models.List(ctx, &genai.ListModelsConfig{PageToken: token})
		if err != nil {
			classified := classifyError(err)
			g.logger.WarnContext(ctx, "Gemini model listing failed",
				"transient", generation.IsTransient(classified),
				"error", err)
			return nil, classified
		}

		for _, m := range page.Items {
			if m != nil && supportsGenerateContent(m) {
				names = append(names, strings.TrimPrefix(m.Name, "models/"))
			}
		}

		token = page.NextPageToken
		if token == "" {
			break
		}
	}
	return names, nil
}

func supportsGenerateContent(m *genai.Model) bool {
	for _, action := range m.SupportedActions {
		if action == generateContentAction {
			return true
		}
	}
	return false
}

// extractText returns the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrEmptyResponse)
	}
	return sb.String(), nil
}

// classifyError maps SDK errors onto the generation error classes.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.Classify(err, apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.Classify(err, apiErrPtr.Code)
	}
	return generation.Classify(err, 0)
}
