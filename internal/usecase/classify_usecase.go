package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/labeler"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/metrics"
)

// ClassifyInput represents a request to label free-text requisitions
type ClassifyInput struct {
	Texts []string `json:"texts" binding:"required,max=10000"`
}

// ClassifyOutput holds one label per input text, in input order
type ClassifyOutput struct {
	Labels    []string `json:"labels"`
	CacheHits int      `json:"cache_hits"`
}

// RuleLabelOutput is the keyword rule result for one text
type RuleLabelOutput struct {
	Text     string `json:"text"`
	IsExam   bool   `json:"is_exam"`
	Category string `json:"category,omitempty"`
	Label    string `json:"label"`
}

// ClassifyUsecase labels texts through the label cache and the model pipeline
type ClassifyUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error)
	LabelByRules(text string) *RuleLabelOutput
}

type classifyUsecase struct {
	predictor Predictor
	cache     repository.LabelCache
	logger    *zap.Logger
}

// NewClassifyUsecase creates a new classify usecase. cache may be nil.
func NewClassifyUsecase(predictor Predictor, cache repository.LabelCache, logger *zap.Logger) ClassifyUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &classifyUsecase{
		predictor: predictor,
		cache:     cache,
		logger:    logger,
	}
}

func (u *classifyUsecase) Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	if input == nil {
		return nil, ErrInvalidRequest
	}
	texts := input.Texts
	labels := make([]string, len(texts))
	if len(texts) == 0 {
		return &ClassifyOutput{Labels: labels}, nil
	}

	cached := u.lookup(ctx, texts)

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		if cached[i] != "" {
			labels[i] = cached[i]
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}
	if u.cache != nil {
		metrics.CacheLookups.WithLabelValues("hit").Add(float64(len(texts) - len(missIdx)))
		metrics.CacheLookups.WithLabelValues("miss").Add(float64(len(missIdx)))
	}

	if len(missTexts) > 0 {
		predicted, err := u.predictor.Predict(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, idx := range missIdx {
			labels[idx] = predicted[j]
		}
		u.store(ctx, missTexts, predicted)
	}

	return &ClassifyOutput{
		Labels:    labels,
		CacheHits: len(texts) - len(missIdx),
	}, nil
}

func (u *classifyUsecase) LabelByRules(text string) *RuleLabelOutput {
	out := &RuleLabelOutput{
		Text:   text,
		IsExam: labeler.LabelBinary(text) == entity.LabelExam,
		Label:  labeler.Classify(text),
	}
	if c, ok := labeler.LabelCategory(text); ok && out.IsExam {
		out.Category = c.String()
	}
	return out
}

func (u *classifyUsecase) lookup(ctx context.Context, texts []string) []string {
	if u.cache == nil {
		return make([]string, len(texts))
	}
	cached, err := u.cache.GetMany(ctx, texts)
	if err != nil || len(cached) != len(texts) {
		u.logger.Warn("Label cache lookup failed, classifying without cache", zap.Error(err))
		return make([]string, len(texts))
	}
	return cached
}

func (u *classifyUsecase) store(ctx context.Context, texts, labels []string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetMany(ctx, texts, labels); err != nil {
		u.logger.Warn("Failed to store labels in cache", zap.Error(err))
	}
}
