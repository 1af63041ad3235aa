package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/metrics"
)

// ErrClassificationIntegrity signals that a model returned a label the
// category table does not know, or a different number of results than texts.
// It means the deployed artifacts and this build disagree.
var ErrClassificationIntegrity = errors.New("classification integrity failure")

// Predictor runs the two-stage pipeline over a batch of texts
type Predictor interface {
	// Predict returns one label per text in input order
	Predict(ctx context.Context, texts []string) ([]string, error)

	// PredictDetailed returns one prediction per text in input order
	PredictDetailed(ctx context.Context, texts []string) ([]entity.Prediction, error)
}

type predictor struct {
	binary     service.Classifier
	multiclass service.Classifier
	logger     *zap.Logger
}

// NewPredictor creates a predictor over the triage and exam-type classifiers
func NewPredictor(binary, multiclass service.Classifier, logger *zap.Logger) Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &predictor{
		binary:     binary,
		multiclass: multiclass,
		logger:     logger,
	}
}

func (p *predictor) Predict(ctx context.Context, texts []string) ([]string, error) {
	preds, err := p.PredictDetailed(ctx, texts)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(preds))
	for i, pred := range preds {
		labels[i] = pred.Label
	}
	return labels, nil
}

func (p *predictor) PredictDetailed(ctx context.Context, texts []string) ([]entity.Prediction, error) {
	if len(texts) == 0 {
		return []entity.Prediction{}, nil
	}

	cleaned := make([]string, len(texts))
	for i, text := range texts {
		cleaned[i] = entity.NormalizeText(text)
	}

	requestID := uuid.New().String()

	triage, err := p.binary.ClassifyBatch(ctx, cleaned, requestID)
	if err != nil {
		return nil, fmt.Errorf("binary triage: %w", err)
	}
	if len(triage) != len(cleaned) {
		return nil, p.integrityError(metrics.StageBinary,
			"binary triage returned %d results for %d texts", len(triage), len(cleaned))
	}

	results := make([]entity.Prediction, len(cleaned))
	resolved := make([]bool, len(cleaned))
	examIdx := make([]int, 0, len(cleaned))

	for i, r := range triage {
		switch r.LabelID {
		case entity.LabelExam:
			examIdx = append(examIdx, i)
		case entity.LabelNotExam:
			results[i] = entity.Prediction{Label: entity.NotImageExam, Confidence: r.Confidence}
			resolved[i] = true
		default:
			return nil, p.integrityError(metrics.StageBinary,
				"binary label %d at index %d", r.LabelID, i)
		}
	}

	p.logger.Debug("Triage partitioned batch",
		zap.String("request_id", requestID),
		zap.Int("exam", len(examIdx)),
		zap.Int("not_exam", len(cleaned)-len(examIdx)),
	)

	if len(examIdx) > 0 {
		examTexts := make([]string, len(examIdx))
		for j, idx := range examIdx {
			examTexts[j] = cleaned[idx]
		}

		types, err := p.multiclass.ClassifyBatch(ctx, examTexts, requestID)
		if err != nil {
			return nil, fmt.Errorf("multiclass classification: %w", err)
		}
		if len(types) != len(examTexts) {
			return nil, p.integrityError(metrics.StageMulticlass,
				"multiclass returned %d results for %d texts", len(types), len(examTexts))
		}

		for j, r := range types {
			idx := examIdx[j]
			category, ok := entity.CategoryFromIndex(r.LabelID)
			if !ok {
				return nil, p.integrityError(metrics.StageMulticlass,
					"multiclass label %d at index %d", r.LabelID, idx)
			}
			results[idx] = entity.Prediction{
				Label:      category.String(),
				IsExam:     true,
				Confidence: r.Confidence,
			}
			resolved[idx] = true
		}
	}

	for i, ok := range resolved {
		if !ok {
			return nil, p.integrityError(metrics.StageMulticlass, "index %d left unresolved", i)
		}
	}

	for _, r := range results {
		metrics.Predictions.WithLabelValues(r.Label).Inc()
	}

	return results, nil
}

func (p *predictor) integrityError(stage, format string, args ...any) error {
	metrics.IntegrityFailures.WithLabelValues(stage).Inc()
	err := fmt.Errorf("%w: "+format, append([]any{ErrClassificationIntegrity}, args...)...)
	p.logger.Error("Classification integrity failure", zap.String("stage", stage), zap.Error(err))
	return err
}
