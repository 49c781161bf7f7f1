package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/visualization"
	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the supported visualization types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			composer, err := prompt.NewComposer(nil)
			if err != nil {
				return err
			}
			registry := visualization.DefaultRegistry(composer, slog.New(slog.NewTextHandler(io.Discard, nil)))

			for _, k := range registry.SupportedKinds() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
