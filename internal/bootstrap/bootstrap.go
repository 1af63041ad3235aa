// Package bootstrap builds the inference pipeline from configuration for
// both the API server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/augment"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/client"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// Pipeline holds the model service client and the classifiers built on it
type Pipeline struct {
	Client     *client.MLClient
	Binary     service.Classifier
	Multiclass service.Classifier
	Predictor  usecase.Predictor
}

// NewPipeline connects to the model service and refuses to start unless both
// models are loaded.
func NewPipeline(ctx context.Context, cfg *config.MLConfig, logger *zap.Logger) (*Pipeline, error) {
	mlClient := client.NewMLClient(cfg.BaseURL, cfg.Tokenizer, cfg.MaxLength, cfg.Timeout)
	if err := mlClient.EnsureModels(ctx, cfg.BinaryModel, cfg.MulticlassModel); err != nil {
		return nil, fmt.Errorf("model service check failed: %w", err)
	}

	binary := client.NewMLClassifier(mlClient, cfg.BinaryModel, cfg.BatchSize)
	multiclass := client.NewMLClassifier(mlClient, cfg.MulticlassModel, cfg.BatchSize)

	logger.Info("Model service ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("binary_model", cfg.BinaryModel),
		zap.String("multiclass_model", cfg.MulticlassModel),
	)

	return &Pipeline{
		Client:     mlClient,
		Binary:     binary,
		Multiclass: multiclass,
		Predictor:  usecase.NewPredictor(binary, multiclass, logger),
	}, nil
}

// NewBalancer builds the dataset balancer with the synonym augmenter
func NewBalancer(cfg *config.BalanceConfig) *usecase.Balancer {
	augmenter := augment.NewSynonymAugmenter(augment.DefaultSynonyms, cfg.AugmentProbability, cfg.Seed)
	return usecase.NewBalancer(usecase.BalanceOptions{
		Seed:       cfg.Seed,
		MinSamples: cfg.MinSamples,
	}, augmenter)
}
