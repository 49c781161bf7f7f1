package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vizgen",
		Short: "Turn questions into flowcharts and mind maps",
		Long: `vizgen asks a language model to explain a concept as a flowchart
(Mermaid source) or a mind map (markdown headings).

Configuration is read from config.yaml, .env and VIZGEN_* environment
variables, for example VIZGEN_LLM_PROVIDER and VIZGEN_LLM_GEMINI_API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newGenerateCmd(), newKindsCmd(), newModelsCmd())
	return root
}
