package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus represents the delivery state of an outbound message
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is a patient message queued for an external sender
type Notification struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primary_key"`
	RunID     uuid.UUID          `json:"run_id" gorm:"type:uuid;not null;index"`
	RecordID  uuid.UUID          `json:"record_id" gorm:"type:uuid;not null"`
	Phone     string             `json:"phone" gorm:"type:varchar(50)"`
	Requester string             `json:"requester" gorm:"type:varchar(255)"`
	Body      string             `json:"body" gorm:"type:text;not null"`
	Status    NotificationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a pending notification for a classified record
func NewNotification(rec *PredictionRecord, body string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		RunID:     rec.RunID,
		RecordID:  rec.ID,
		Phone:     rec.Phone,
		Requester: rec.Requester,
		Body:      body,
		Status:    NotificationStatusPending,
	}
}
