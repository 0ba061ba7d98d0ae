package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/codecommit"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/config"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/csvstore"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/llm"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/pipeline"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var output, model string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:          "codecommit-summariser",
		Short:        "CodeCommit repositories → AI summaries in a CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			if output != "" {
				cfg.OutputFile = output
			}
			if model != "" {
				cfg.LLMModel = model
			}
			if cmd.Flags().Changed("delay") {
				cfg.PacingDelay = delay
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cc, err := codecommit.NewClient(ctx, cfg.AWSRegion)
			if err != nil {
				return err
			}

			p := &pipeline.Pipeline{
				Lister:      cc,
				Fetcher:     cc,
				Summarizer:  llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
				Store:       csvstore.NewStore(cfg.OutputFile),
				PacingDelay: cfg.PacingDelay,
			}
			return p.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Output CSV path (overrides OUTPUT_FILE)")
	cmd.Flags().StringVar(&model, "model", "", "Chat model (overrides LLM_MODEL)")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pacing delay between repositories")
	cmd.AddCommand(statusCmd())
	return cmd
}

func statusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:          "status",
		Short:        "Show processed vs remaining repository counts (no AI calls)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			if output != "" {
				cfg.OutputFile = output
			}

			processed, err := csvstore.NewStore(cfg.OutputFile).LoadProcessed()
			if err != nil {
				return err
			}

			cc, err := codecommit.NewClient(ctx, cfg.AWSRegion)
			if err != nil {
				return err
			}
			all, err := cc.ListRepositories(ctx)
			if err != nil {
				return err
			}

			remaining := 0
			for _, name := range all {
				if _, done := processed[name]; !done {
					remaining++
				}
			}

			fmt.Printf("Repositories: %d\n", len(all))
			fmt.Printf("Processed:    %d\n", len(processed))
			fmt.Printf("Remaining:    %d\n", remaining)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Output CSV path (overrides OUTPUT_FILE)")
	return cmd
}
