package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/bootstrap"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// Classifier stages accepted by --stage
const (
	stageBinary     = "binary"
	stageMulticlass = "multiclass"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Report accuracy and weighted F1 of a deployed model on a JSONL split",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		stage := flagString(cmd, "stage")
		if stage != stageBinary && stage != stageMulticlass {
			return fmt.Errorf("unknown stage %q, want %s or %s", stage, stageBinary, stageMulticlass)
		}

		f, err := os.Open(flagString(cmd, "split"))
		if err != nil {
			return fmt.Errorf("open split: %w", err)
		}
		samples, err := csvio.ReadSamples(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("read split: %w", err)
		}

		pipeline, err := bootstrap.NewPipeline(cmd.Context(), &cfg.ML, log)
		if err != nil {
			return err
		}

		var classifier service.Classifier = pipeline.Binary
		if stage == stageMulticlass {
			classifier = pipeline.Multiclass
		}

		report, err := usecase.Evaluate(cmd.Context(), classifier, samples)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	evaluateCmd.Flags().String("split", "", "JSONL split produced by examctl dataset")
	evaluateCmd.Flags().String("stage", stageBinary, "Model to evaluate: binary or multiclass")
	_ = evaluateCmd.MarkFlagRequired("split")
}
