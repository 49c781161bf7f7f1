package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vizgen/internal/config"
	"github.com/phrazzld/vizgen/internal/events"
	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/phrazzld/vizgen/internal/job"
	"github.com/phrazzld/vizgen/internal/platform/anthropic"
	"github.com/phrazzld/vizgen/internal/platform/gemini"
	"github.com/phrazzld/vizgen/internal/platform/logger"
	"github.com/phrazzld/vizgen/internal/platform/openai"
	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/visualization"
)

// application holds the wired dependencies shared by the commands.
type application struct {
	config *config.Config
	logger *slog.Logger

	model        visualization.ModelHandle
	lister       generation.ModelLister
	registry     *visualization.Registry
	store        *job.Store
	orchestrator *job.Orchestrator
	eventEmitter *events.InMemoryEventEmitter
}

// loadApplication reads configuration, sets up logging and wires the application.
func loadApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName())

	gen, err := newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	return newApplication(cfg, log, gen)
}

// newApplication wires the domain components around gen.
func newApplication(cfg *config.Config, log *slog.Logger, gen generation.Generator) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	var overrides map[prompt.DomainHint]prompt.DomainTemplate
	if cfg.Prompt.TemplatesPath != "" {
		var err error
		overrides, err = prompt.LoadTemplates(cfg.Prompt.TemplatesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompt templates: %w", err)
		}
		log.Info("prompt templates loaded",
			"path", cfg.Prompt.TemplatesPath,
			"domains", len(overrides))
	}

	composer, err := prompt.NewComposer(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt composer: %w", err)
	}

	app.registry = visualization.DefaultRegistry(composer, log)
	app.model = visualization.ModelHandle{
		Generator:       generation.NewRateLimited(gen, cfg.LLM.RequestsPerSecond, cfg.LLM.Burst),
		ModelID:         cfg.LLM.ModelName(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	}

	// The lister bypasses the rate limiter; listing is not a generation call.
	if lister, ok := gen.(generation.ModelLister); ok {
		app.lister = lister
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(log)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(log))

	app.store = job.NewStore()
	app.orchestrator = job.NewOrchestrator(
		app.store,
		app.registry,
		app.model,
		jobConfig(cfg.Jobs),
		log,
		job.WithEmitter(app.eventEmitter),
	)

	log.Info("application initialized",
		"supported_types", app.registry.SupportedKinds())
	return app, nil
}

// newGenerator creates the client for the configured provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Generator, error) {
	log = log.With("component", "llm_generator")

	var (
		gen generation.Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		gen, err = gemini.NewGenerator(ctx, log, cfg)
	case config.ProviderOpenAI:
		gen, err = openai.NewGenerator(log, cfg)
	case config.ProviderAnthropic:
		gen, err = anthropic.NewGenerator(log, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	log.Info("LLM generator initialized", "provider", cfg.Provider, "model", cfg.ModelName())
	return gen, nil
}

func jobConfig(cfg config.JobsConfig) job.Config {
	return job.Config{
		MaxAttempts:    cfg.MaxAttempts,
		BaseBackoff:    cfg.BaseBackoff,
		AttemptTimeout: cfg.AttemptTimeout,
		Expiry:         cfg.Expiry,
		SweepInterval:  cfg.SweepInterval,
		MaxConcurrent:  cfg.MaxConcurrent,
	}
}

// cleanup stops background work.
func (app *application) cleanup() {
	app.orchestrator.Stop()
	app.logger.Info("application shutdown completed")
}
