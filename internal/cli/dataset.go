package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/bootstrap"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build weak-labeled, balanced training splits",
}

var datasetBinaryCmd = &cobra.Command{
	Use:   "binary",
	Short: "Build the exam / not-exam dataset from keyword rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		table, err := readTable(flagString(cmd, "input"))
		if err != nil {
			return err
		}

		builder := usecase.NewDatasetBuilder(bootstrap.NewBalancer(&cfg.Balance), nil, log)
		samples, err := builder.PrepareBinary(table.Records)
		if err != nil {
			return err
		}

		return writeSplits(flagString(cmd, "output-dir"), usecase.Split(samples, cfg.Balance.Seed), log)
	},
}

var datasetMulticlassCmd = &cobra.Command{
	Use:   "multiclass",
	Short: "Build the exam-type dataset from texts the triage model accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		table, err := readTable(flagString(cmd, "input"))
		if err != nil {
			return err
		}

		pipeline, err := bootstrap.NewPipeline(cmd.Context(), &cfg.ML, log)
		if err != nil {
			return err
		}

		builder := usecase.NewDatasetBuilder(bootstrap.NewBalancer(&cfg.Balance), pipeline.Binary, log)
		samples, err := builder.PrepareMulticlass(cmd.Context(), table.Records)
		if err != nil {
			return err
		}

		return writeSplits(flagString(cmd, "output-dir"), usecase.Split(samples, cfg.Balance.Seed), log)
	},
}

func init() {
	for _, c := range []*cobra.Command{datasetBinaryCmd, datasetMulticlassCmd} {
		c.Flags().String("input", "", "Requisition CSV with a DS_RECEITA column")
		c.Flags().String("output-dir", "data/datasets", "Directory receiving train/validation/test JSONL files")
		_ = c.MarkFlagRequired("input")
		datasetCmd.AddCommand(c)
	}
}

func writeSplits(dir string, split usecase.DatasetSplit, log *zap.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	parts := []struct {
		name    string
		samples []entity.LabeledSample
	}{
		{"train", split.Train},
		{"validation", split.Validation},
		{"test", split.Test},
	}
	for _, p := range parts {
		path := filepath.Join(dir, p.name+".jsonl")
		err := writeOutput(path, func(w io.Writer) error { return csvio.WriteSamples(w, p.samples) })
		if err != nil {
			return err
		}
		log.Info("Split written", zap.String("split", p.name), zap.Int("samples", len(p.samples)), zap.String("path", path))
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
