package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/labeler"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
)

// ErrNoExamTexts is returned when the triage model keeps no text for multiclass training
var ErrNoExamTexts = errors.New("no text was classified as an image exam")

// Held-out fractions of the split
const (
	heldOutFraction = 0.3
	testFraction    = 0.5
)

// DatasetSplit holds the train/validation/test partitions of a balanced set
type DatasetSplit struct {
	Train      []entity.LabeledSample `json:"train"`
	Validation []entity.LabeledSample `json:"validation"`
	Test       []entity.LabeledSample `json:"test"`
}

// EvaluationReport holds the test metrics of a trained classifier
type EvaluationReport struct {
	Samples    int     `json:"samples"`
	Accuracy   float64 `json:"accuracy"`
	WeightedF1 float64 `json:"weighted_f1"`
}

// DatasetBuilder prepares weakly labeled, balanced training sets
type DatasetBuilder struct {
	balancer *Balancer
	triage   service.Classifier
	logger   *zap.Logger
}

// NewDatasetBuilder creates a DatasetBuilder. triage is only needed for
// PrepareMulticlass.
func NewDatasetBuilder(balancer *Balancer, triage service.Classifier, logger *zap.Logger) *DatasetBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetBuilder{
		balancer: balancer,
		triage:   triage,
		logger:   logger,
	}
}

// PrepareBinary labels records with the keyword rule and balances the result
func (d *DatasetBuilder) PrepareBinary(records []entity.Record) ([]entity.LabeledSample, error) {
	samples := make([]entity.LabeledSample, 0, len(records))
	for _, rec := range records {
		text := entity.NormalizeText(rec.Text)
		if strings.TrimSpace(text) == "" {
			continue
		}
		samples = append(samples, entity.LabeledSample{Text: text, Label: labeler.LabelBinary(text)})
	}
	d.logger.Info("Weak-labeled binary samples", zap.Int("valid", len(samples)), zap.Int("records", len(records)))

	balanced, err := d.balancer.BalanceBinary(samples)
	if err != nil {
		return nil, fmt.Errorf("balance binary samples: %w", err)
	}
	d.logger.Info("Balanced binary samples", zap.Int("total", len(balanced)))
	return balanced, nil
}

// PrepareMulticlass keeps the records the triage model accepts, labels them
// with the category cascade and balances the result.
func (d *DatasetBuilder) PrepareMulticlass(ctx context.Context, records []entity.Record) ([]entity.LabeledSample, error) {
	if d.triage == nil {
		return nil, errors.New("multiclass preparation requires a triage classifier")
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = entity.NormalizeText(rec.Text)
	}

	var exams []string
	if len(texts) > 0 {
		triage, err := d.triage.ClassifyBatch(ctx, texts, uuid.New().String())
		if err != nil {
			return nil, fmt.Errorf("binary triage: %w", err)
		}
		if len(triage) != len(texts) {
			return nil, fmt.Errorf("%w: binary triage returned %d results for %d texts",
				ErrClassificationIntegrity, len(triage), len(texts))
		}
		for i, r := range triage {
			if r.LabelID == entity.LabelExam {
				exams = append(exams, texts[i])
			}
		}
	}
	if len(exams) == 0 {
		return nil, ErrNoExamTexts
	}
	d.logger.Info("Texts kept by triage", zap.Int("exams", len(exams)))

	samples := make([]entity.LabeledSample, 0, len(exams))
	for _, text := range exams {
		if c, ok := labeler.LabelCategory(text); ok {
			samples = append(samples, entity.LabeledSample{Text: text, Label: c.Index()})
		}
	}
	d.logger.Info("Class distribution before balancing", zap.Any("counts", categoryCounts(samples)))

	balanced, err := d.balancer.BalanceMulticlass(samples)
	if err != nil {
		return nil, fmt.Errorf("balance multiclass samples: %w", err)
	}
	d.logger.Info("Class distribution after balancing", zap.Any("counts", categoryCounts(balanced)))
	return balanced, nil
}

// Split shuffles samples with seed and partitions them 70/15/15
func Split(samples []entity.LabeledSample, seed uint64) DatasetSplit {
	shuffled := make([]entity.LabeledSample, len(samples))
	copy(shuffled, samples)
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	heldOut := int(math.Ceil(heldOutFraction * float64(len(shuffled))))
	train := shuffled[:len(shuffled)-heldOut]
	rest := shuffled[len(shuffled)-heldOut:]

	test := int(math.Ceil(testFraction * float64(len(rest))))
	return DatasetSplit{
		Train:      train,
		Validation: rest[:len(rest)-test],
		Test:       rest[len(rest)-test:],
	}
}

// Evaluate runs classifier over samples and reports accuracy and support-weighted F1
func Evaluate(ctx context.Context, classifier service.Classifier, samples []entity.LabeledSample) (*EvaluationReport, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	texts := make([]string, len(samples))
	truth := make([]int, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
		truth[i] = s.Label
	}

	res, err := classifier.ClassifyBatch(ctx, texts, uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("classify evaluation set: %w", err)
	}
	if len(res) != len(texts) {
		return nil, fmt.Errorf("%w: classifier returned %d results for %d texts",
			ErrClassificationIntegrity, len(res), len(texts))
	}

	predicted := make([]int, len(res))
	for i, r := range res {
		predicted[i] = r.LabelID
	}

	return &EvaluationReport{
		Samples:    len(samples),
		Accuracy:   accuracy(truth, predicted),
		WeightedF1: weightedF1(truth, predicted),
	}, nil
}

func accuracy(truth, predicted []int) float64 {
	correct := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

// weightedF1 averages per-label F1 weighted by the label's support in truth
func weightedF1(truth, predicted []int) float64 {
	labels := make(map[int]struct{})
	for i := range truth {
		labels[truth[i]] = struct{}{}
		labels[predicted[i]] = struct{}{}
	}

	keys := make([]int, 0, len(labels))
	for l := range labels {
		keys = append(keys, l)
	}
	sort.Ints(keys)

	var sum float64
	var support int
	for _, l := range keys {
		var tp, fp, fn int
		for i := range truth {
			switch {
			case truth[i] == l && predicted[i] == l:
				tp++
			case truth[i] != l && predicted[i] == l:
				fp++
			case truth[i] == l && predicted[i] != l:
				fn++
			}
		}
		n := tp + fn
		if n == 0 {
			continue
		}
		sum += f1(tp, fp, fn) * float64(n)
		support += n
	}
	if support == 0 {
		return 0
	}
	return sum / float64(support)
}

func f1(tp, fp, fn int) float64 {
	if tp == 0 {
		return 0
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall)
}

func categoryCounts(samples []entity.LabeledSample) map[string]int {
	counts := make(map[string]int)
	for _, s := range samples {
		counts[entity.Category(s.Label).String()]++
	}
	return counts
}
