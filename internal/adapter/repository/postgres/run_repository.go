package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
)

const insertBatchSize = 100

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) repository.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(ctx context.Context, run *entity.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	var run entity.Run
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) List(ctx context.Context, limit, offset int) ([]*entity.Run, int64, error) {
	var runs []*entity.Run
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Run{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

func (r *runRepository) Update(ctx context.Context, run *entity.Run) error {
	return r.db.WithContext(ctx).Save(run).Error
}

type predictionRecordRepository struct {
	db *gorm.DB
}

// NewPredictionRecordRepository creates a new prediction record repository
func NewPredictionRecordRepository(db *gorm.DB) repository.PredictionRecordRepository {
	return &predictionRecordRepository{db: db}
}

func (r *predictionRecordRepository) CreateBatch(ctx context.Context, records []*entity.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, insertBatchSize).Error
}

func (r *predictionRecordRepository) GetByRunIDPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*entity.PredictionRecord, int64, error) {
	var records []*entity.PredictionRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.PredictionRecord{}).Where("run_id = ?", runID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("row_index ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(notifications, insertBatchSize).Error
}

func (r *notificationRepository) GetByRunIDPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	var notifications []*entity.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Notification{}).Where("run_id = ?", runID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}
