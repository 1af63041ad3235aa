package usecase

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
)

// Balancer errors
var (
	ErrNoSamples    = errors.New("no samples to balance")
	ErrEmptyClass   = errors.New("class has no samples to resample from")
	ErrInvalidLabel = errors.New("sample label outside the label table")
)

// Balance defaults
const (
	DefaultBalanceSeed     = 42
	DefaultMinClassSamples = 75
	binaryClassCount       = 2
)

// BalanceOptions configures a Balancer
type BalanceOptions struct {
	Seed       uint64
	MinSamples int
}

// Balancer resamples labeled sets toward equal class frequencies
type Balancer struct {
	seed       uint64
	minSamples int
	augmenter  service.Augmenter
}

// NewBalancer creates a Balancer. augmenter may be nil, which skips the
// augmentation pass of the multiclass variant.
func NewBalancer(opts BalanceOptions, augmenter service.Augmenter) *Balancer {
	if opts.MinSamples <= 0 {
		opts.MinSamples = DefaultMinClassSamples
	}
	return &Balancer{
		seed:       opts.Seed,
		minSamples: opts.MinSamples,
		augmenter:  augmenter,
	}
}

// MinSamples returns the per-category floor of the multiclass variant
func (b *Balancer) MinSamples() int {
	return b.minSamples
}

// BalanceBinary under-samples negatives down to the positive count, or
// redraws positives with replacement to the negative count. Either way the
// result holds twice the smaller class.
func (b *Balancer) BalanceBinary(samples []entity.LabeledSample) ([]entity.LabeledSample, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	var positives, negatives []entity.LabeledSample
	for _, s := range samples {
		switch s.Label {
		case entity.LabelExam:
			positives = append(positives, s)
		case entity.LabelNotExam:
			negatives = append(negatives, s)
		default:
			return nil, fmt.Errorf("%w: binary label %d", ErrInvalidLabel, s.Label)
		}
	}
	if len(positives) == 0 {
		return nil, fmt.Errorf("%w: label %d", ErrEmptyClass, entity.LabelExam)
	}
	if len(negatives) == 0 {
		return nil, fmt.Errorf("%w: label %d", ErrEmptyClass, entity.LabelNotExam)
	}

	out := make([]entity.LabeledSample, 0, binaryClassCount*max(len(positives), len(negatives)))
	if len(negatives) >= len(positives) {
		out = append(out, positives...)
		out = append(out, b.sampleWithoutReplacement(negatives, len(positives))...)
		return out, nil
	}

	out = append(out, b.sampleWithReplacement(positives, len(negatives))...)
	out = append(out, negatives...)
	return out, nil
}

// BalanceMulticlass adds one augmented copy of every sample whose category is
// below the floor, then over-samples each category still below the floor up
// to it. Counts used for the augmentation decision are taken before it runs,
// so a category far below the floor gets a single pass only.
func (b *Balancer) BalanceMulticlass(samples []entity.LabeledSample) ([]entity.LabeledSample, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	counts := make(map[int]int, entity.NumCategories)
	for _, s := range samples {
		if _, ok := entity.CategoryFromIndex(s.Label); !ok {
			return nil, fmt.Errorf("%w: category index %d", ErrInvalidLabel, s.Label)
		}
		counts[s.Label]++
	}

	data := make([]entity.LabeledSample, len(samples), 2*len(samples))
	copy(data, samples)

	if b.augmenter != nil {
		for _, s := range samples {
			if counts[s.Label] >= b.minSamples {
				continue
			}
			text, err := b.augmenter.Augment(s.Text)
			if err != nil {
				return nil, fmt.Errorf("augment sample: %w", err)
			}
			data = append(data, entity.LabeledSample{Text: text, Label: s.Label})
		}
	}

	byClass := make(map[int][]entity.LabeledSample, entity.NumCategories)
	for _, s := range data {
		byClass[s.Label] = append(byClass[s.Label], s)
	}

	var out []entity.LabeledSample
	for _, c := range entity.Categories() {
		class := byClass[c.Index()]
		if len(class) == 0 {
			continue
		}
		if len(class) < b.minSamples {
			class = b.sampleWithReplacement(class, b.minSamples)
		}
		out = append(out, class...)
	}

	return out, nil
}

// Each resample draws from a fresh generator so the result only depends on
// the input and the seed.
func (b *Balancer) rng() *rand.Rand {
	return rand.New(rand.NewPCG(b.seed, b.seed))
}

func (b *Balancer) sampleWithoutReplacement(src []entity.LabeledSample, n int) []entity.LabeledSample {
	perm := b.rng().Perm(len(src))
	out := make([]entity.LabeledSample, n)
	for i := 0; i < n; i++ {
		out[i] = src[perm[i]]
	}
	return out
}

func (b *Balancer) sampleWithReplacement(src []entity.LabeledSample, n int) []entity.LabeledSample {
	r := b.rng()
	out := make([]entity.LabeledSample, n)
	for i := range out {
		out[i] = src[r.IntN(len(src))]
	}
	return out
}
