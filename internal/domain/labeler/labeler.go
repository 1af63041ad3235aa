// Package labeler holds the deterministic keyword rules used as weak
// supervision for training and as a fallback classification.
package labeler

import (
	"strings"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

// Exam keywords carry a trailing space so "tc " does not match inside a word.
var examKeywords = []string{
	"tomografia ", "tc ", "ct ",
	"ressonância magnética ", "rnm ", "rm ", "mri ",
	"ultrassom ", "us ", "ecografia ", "usg ",
	"radiografia ", "rx ", "raio x ",
	"eletrocardiograma ", "ecg ",
	"densitometria ", "mamografia ",
}

// Administration routes and lab tests. Any of them forces a negative label.
var exclusionKeywords = []string{
	"furosemida ", "uso oral ", "uso ", "uso interno ", "obstipante ",
	"hemograma ", "uso nasal ", "uso inalatorio ",
}

// CategoryRule pairs a category with the keywords that select it
type CategoryRule struct {
	Category entity.Category
	Keywords []string
}

// categoryRules is evaluated top to bottom; the first match wins.
var categoryRules = []CategoryRule{
	{Category: entity.CategoryTomography, Keywords: []string{"tomografia", "tc", "ct"}},
	{Category: entity.CategoryMRI, Keywords: []string{"ressonância magnética", "rnm", "rm", "mri"}},
	{Category: entity.CategoryUltrasound, Keywords: []string{"ultrassom", "us", "ecografia", "usg"}},
	{Category: entity.CategoryRadiography, Keywords: []string{"radiografia", "rx", "raio x"}},
	{Category: entity.CategoryElectrocardiogram, Keywords: []string{"eletrocardiograma", "ecg"}},
	{Category: entity.CategoryDensitometry, Keywords: []string{"densitometria"}},
}

// CategoryRules returns a copy of the ordered category cascade
func CategoryRules() []CategoryRule {
	out := make([]CategoryRule, len(categoryRules))
	copy(out, categoryRules)
	return out
}

// LabelBinary returns entity.LabelExam when text mentions an image exam and
// none of the exclusion keywords, entity.LabelNotExam otherwise.
func LabelBinary(text string) int {
	lower := strings.ToLower(text)
	if containsAny(lower, exclusionKeywords) {
		return entity.LabelNotExam
	}
	if containsAny(lower, examKeywords) {
		return entity.LabelExam
	}
	return entity.LabelNotExam
}

// LabelCategory returns the first category of the cascade whose keywords
// appear in text. ok is false when nothing matches.
func LabelCategory(text string) (entity.Category, bool) {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.Keywords) {
			return rule.Category, true
		}
	}
	return 0, false
}

// Classify applies both rules and returns the pipeline-shaped result label
func Classify(text string) string {
	if LabelBinary(text) != entity.LabelExam {
		return entity.NotImageExam
	}
	if c, ok := LabelCategory(text); ok {
		return c.String()
	}
	return entity.NotImageExam
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
