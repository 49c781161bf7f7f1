package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

const listModelsTimeout = 30 * time.Second

var errModelListingUnsupported = errors.New("the configured provider cannot list models")

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available to the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), listModelsTimeout)
			defer cancel()

			app, err := loadApplication(ctx)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return runModels(ctx, app, cmd.OutOrStdout())
		},
	}
}

// runModels prints one model id per line, marking the configured model.
func runModels(ctx context.Context, app *application, out io.Writer) error {
	if app.lister == nil {
		return errModelListingUnsupported
	}

	models, err := app.lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, m := range models {
		marker := " "
		if m == app.model.ModelID {
			marker = "*"
		}
		if _, err := fmt.Fprintf(out, "%s %s\n", marker, m); err != nil {
			return err
		}
	}
	return nil
}
