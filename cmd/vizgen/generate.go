package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/job"
	"github.com/spf13/cobra"
)

const generatePollInterval = 100 * time.Millisecond

type generateOptions struct {
	kind       string
	complexity string
	maxDepth   int
	style      string
	asJSON     bool
	timeout    time.Duration
}

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [question]",
		Short: "Generate one visualization and print it",
		Long: `Generate one visualization and print it.

Examples:
  vizgen generate "How does TCP congestion control work?"
  vizgen generate --type flowchart --complexity detailed "How does OAuth2 work?"
  vizgen generate --type mindmap --max-depth 3 --json "Photosynthesis"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := loadApplication(ctx)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return runGenerate(ctx, app, cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "type", "t", domain.KindMindmap.String(), "visualization type (flowchart or mindmap)")
	cmd.Flags().StringVar(&opts.complexity, "complexity", "", "simple, balanced or detailed")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum depth, 2 to 6 (0 uses the default)")
	cmd.Flags().StringVar(&opts.style, "style", "", "free-form style hint")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print content and metadata as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "give up after this long")

	return cmd
}

// generateOutput is printed by --json.
type generateOutput struct {
	JobID             string         `json:"job_id"`
	VisualizationType string         `json:"visualization_type"`
	Content           string         `json:"content"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Attempts          int            `json:"attempts"`
}

// runGenerate submits one job, waits for it and writes the result to out.
func runGenerate(ctx context.Context, app *application, out io.Writer, question string, opts generateOptions) error {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	id, err := app.orchestrator.Submit(ctx, question, opts.kind, domain.GenerationOptions{
		Complexity: domain.Complexity(opts.complexity),
		MaxDepth:   opts.maxDepth,
		Style:      opts.style,
	})
	if err != nil {
		return err
	}

	j, err := waitForJob(ctx, app.orchestrator, id)
	if err != nil {
		return err
	}

	if j.Status == job.StatusFailed {
		summary := job.GenericFailureMessage
		if j.Error != nil {
			summary = *j.Error
		}
		return errors.New(summary)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{
			JobID:             j.ID,
			VisualizationType: j.Kind.String(),
			Content:           *j.Content,
			Metadata:          j.Metadata,
			Attempts:          j.Attempts,
		})
	}

	_, err = fmt.Fprintln(out, *j.Content)
	return err
}

// waitForJob polls until the job is terminal or ctx ends.
func waitForJob(ctx context.Context, jobs *job.Orchestrator, id string) (job.Job, error) {
	ticker := time.NewTicker(generatePollInterval)
	defer ticker.Stop()

	for {
		j, err := jobs.Status(ctx, id)
		if err != nil {
			return job.Job{}, err
		}
		if j.Status.IsTerminal() {
			return j, nil
		}

		select {
		case <-ctx.Done():
			return job.Job{}, fmt.Errorf("waiting for job %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}
