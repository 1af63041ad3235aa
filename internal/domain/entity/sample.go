package entity

import "strings"

// Record is one requisition row as read from the source. Position in the
// input sequence is its identity; Requester and Phone pass through untouched.
type Record struct {
	Text      string `json:"text"`
	Requester string `json:"requester,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// LabeledSample is a training example. Label is 0/1 for triage data and a
// Category index for multiclass data.
type LabeledSample struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// Prediction is the outcome of the two-stage pipeline for one input text
type Prediction struct {
	Label      string  `json:"label"`
	IsExam     bool    `json:"is_exam"`
	Confidence float64 `json:"confidence"`
}

// NormalizeText coerces raw input into a text the classifiers accept.
// Invalid UTF-8 sequences are dropped; missing values are already "".
func NormalizeText(text string) string {
	return strings.ToValidUTF8(text, "")
}
