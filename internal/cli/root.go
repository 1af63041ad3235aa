// Package cli implements the examctl operator commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/logger"
)

var rootCmd = &cobra.Command{
	Use:           "examctl",
	Short:         "Medical exam requisition classifier tooling",
	Long:          "examctl labels requisition exports, prepares training datasets and evaluates the deployed models.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with ctx as every subcommand's context
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides EXAMTRIAGE_LOG_LEVEL)")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(processObjectCmd)
}

// setup loads configuration and a logger writing to stderr
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	cfg.Log.Output = "stderr"

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
