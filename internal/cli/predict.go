package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/bootstrap"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Label every row of a requisition CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		table, err := readTable(input)
		if err != nil {
			return err
		}

		pipeline, err := bootstrap.NewPipeline(cmd.Context(), &cfg.ML, log)
		if err != nil {
			return err
		}

		labels, err := pipeline.Predictor.Predict(cmd.Context(), table.Texts())
		if err != nil {
			return fmt.Errorf("predict: %w", err)
		}

		if err := writeOutput(output, func(w io.Writer) error { return csvio.Write(w, table, labels) }); err != nil {
			return err
		}

		log.Info("Processing finished", zap.Int("rows", len(labels)), zap.String("output", output))
		return nil
	},
}

func init() {
	predictCmd.Flags().String("input", "", "Requisition CSV to label")
	predictCmd.Flags().String("output", "data/processed/resultado_processado.csv", "Labeled CSV path, - for stdout")
	_ = predictCmd.MarkFlagRequired("input")
}

func readTable(path string) (*csvio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	table, err := csvio.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// writeOutput streams to stdout for "-" and to a freshly created file otherwise
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
