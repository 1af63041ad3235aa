package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the current state of a processing run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one batch of requisitions pushed through the pipeline
type Run struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Source           string    `json:"source" gorm:"type:varchar(255);not null"`
	Status           RunStatus `json:"status" gorm:"type:varchar(20);not null;default:'running'"`
	TotalRows        int       `json:"total_rows" gorm:"not null"`
	ExamRows         int       `json:"exam_rows" gorm:"default:0"`
	NotificationRows int       `json:"notification_rows" gorm:"default:0"`
	Error            string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Records []PredictionRecord `json:"records,omitempty" gorm:"foreignKey:RunID"`
}

// TableName returns the table name for GORM
func (Run) TableName() string {
	return "runs"
}

// NewRun creates a new running Run
func NewRun(source string, totalRows int) *Run {
	return &Run{
		ID:        uuid.New(),
		Source:    source,
		Status:    RunStatusRunning,
		TotalRows: totalRows,
	}
}

// ExamRate returns the share of rows classified as image exams
func (r *Run) ExamRate() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.ExamRows) / float64(r.TotalRows)
}

// Complete marks the run as completed with its final counters
func (r *Run) Complete(examRows, notificationRows int) {
	r.Status = RunStatusCompleted
	r.ExamRows = examRows
	r.NotificationRows = notificationRows
}

// Fail marks the run as failed
func (r *Run) Fail(err error) {
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
}

// IsFinished returns true once the run reached a terminal status
func (r *Run) IsFinished() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}
