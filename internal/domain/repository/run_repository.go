package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

// RunRepository defines the interface for run data operations
type RunRepository interface {
	// Create creates a new run
	Create(ctx context.Context, run *entity.Run) error

	// GetByID retrieves a run by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Run, error)

	// List retrieves runs with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.Run, int64, error)

	// Update updates a run
	Update(ctx context.Context, run *entity.Run) error
}

// PredictionRecordRepository defines the interface for classified row operations
type PredictionRecordRepository interface {
	// CreateBatch creates multiple records at once
	CreateBatch(ctx context.Context, records []*entity.PredictionRecord) error

	// GetByRunIDPaginated retrieves records of a run ordered by row index
	GetByRunIDPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*entity.PredictionRecord, int64, error)
}

// NotificationRepository defines the interface for outbound message operations
type NotificationRepository interface {
	// CreateBatch creates multiple notifications at once
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error

	// GetByRunIDPaginated retrieves notifications of a run
	GetByRunIDPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error)
}
