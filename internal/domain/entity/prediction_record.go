package entity

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is one classified requisition row of a run
type PredictionRecord struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RunID      uuid.UUID `json:"run_id" gorm:"type:uuid;not null;index"`
	RowIndex   int       `json:"row_index" gorm:"not null"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	Requester  string    `json:"requester" gorm:"type:varchar(255)"`
	Phone      string    `json:"phone" gorm:"type:varchar(50)"`
	Label      string    `json:"label" gorm:"type:varchar(50);not null"`
	IsExam     bool      `json:"is_exam" gorm:"not null"`
	Confidence float64   `json:"confidence" gorm:"type:decimal(5,4)"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (PredictionRecord) TableName() string {
	return "prediction_records"
}

// NewPredictionRecord creates the stored form of a row and its prediction
func NewPredictionRecord(runID uuid.UUID, rowIndex int, rec Record, pred Prediction) *PredictionRecord {
	return &PredictionRecord{
		ID:         uuid.New(),
		RunID:      runID,
		RowIndex:   rowIndex,
		Text:       rec.Text,
		Requester:  rec.Requester,
		Phone:      rec.Phone,
		Label:      pred.Label,
		IsExam:     pred.IsExam,
		Confidence: pred.Confidence,
	}
}
