package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/repository/postgres"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/bootstrap"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/database"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/storage"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

var processObjectCmd = &cobra.Command{
	Use:   "process-object",
	Short: "Classify a raw CSV from object storage and upload the labeled result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		object := flagString(cmd, "object")
		all, _ := cmd.Flags().GetBool("all")
		if object == "" && !all {
			return errors.New("either --object or --all is required")
		}

		ctx := cmd.Context()

		store, err := storage.NewMinioStore(ctx, &cfg.Storage, log)
		if err != nil {
			return err
		}

		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		pipeline, err := bootstrap.NewPipeline(ctx, &cfg.ML, log)
		if err != nil {
			return err
		}

		runUC := usecase.NewRunUsecase(
			postgres.NewRunRepository(db),
			postgres.NewPredictionRecordRepository(db),
			postgres.NewNotificationRepository(db),
			pipeline.Predictor,
			cfg.Messaging.MaxMessages,
			log,
		)
		objectUC := usecase.NewObjectUsecase(store, runUC, usecase.ObjectLayout{
			RawPrefix:       cfg.Storage.RawPrefix,
			ProcessedObject: cfg.Storage.ProcessedObject,
		}, log)

		objects := []string{object}
		if all {
			if objects, err = objectUC.ListRaw(ctx); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, name := range objects {
			result, err := objectUC.ProcessObject(ctx, name)
			if err != nil {
				log.Error("Object processing failed", zap.String("object", name), zap.Error(err))
				return err
			}
			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	processObjectCmd.Flags().String("object", "", "Object name under the raw prefix")
	processObjectCmd.Flags().Bool("all", false, "Process every CSV under the raw prefix")
}
