package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
)

// Error definitions for run usecase
var (
	ErrRunNotFound    = errors.New("run not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// ProcessRunInput represents the input for processing a batch of requisitions
type ProcessRunInput struct {
	Source  string          `json:"source"`
	Records []entity.Record `json:"records" binding:"required,min=1,max=50000"`
}

// RunOutput represents the output for run operations
type RunOutput struct {
	RunID            uuid.UUID `json:"run_id"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	TotalRows        int       `json:"total_rows"`
	ExamRows         int       `json:"exam_rows"`
	ExamRate         float64   `json:"exam_rate"`
	NotificationRows int       `json:"notification_rows"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

// RunListOutput represents paginated run list
type RunListOutput struct {
	Runs    []*RunOutput `json:"runs"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	HasMore bool         `json:"has_more"`
}

// RecordOutput represents one classified row
type RecordOutput struct {
	RecordID   uuid.UUID `json:"record_id"`
	RowIndex   int       `json:"row_index"`
	Text       string    `json:"text"`
	Requester  string    `json:"requester"`
	Phone      string    `json:"phone"`
	Label      string    `json:"label"`
	IsExam     bool      `json:"is_exam"`
	Confidence float64   `json:"confidence"`
}

// NotificationOutput represents one queued patient message
type NotificationOutput struct {
	NotificationID uuid.UUID `json:"notification_id"`
	RecordID       uuid.UUID `json:"record_id"`
	Phone          string    `json:"phone"`
	Requester      string    `json:"requester"`
	Body           string    `json:"body"`
	Status         string    `json:"status"`
}

// ProcessResult is the full outcome of Process, including the classified rows
type ProcessResult struct {
	Run           *RunOutput
	Records       []*entity.PredictionRecord
	Notifications []*entity.Notification
}

// RunUsecase defines the interface for requisition run business logic
type RunUsecase interface {
	Process(ctx context.Context, input *ProcessRunInput) (*ProcessResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RunOutput, error)
	List(ctx context.Context, limit, offset int) (*RunListOutput, error)
	GetRecords(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*RecordOutput, int64, error)
	GetNotifications(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*NotificationOutput, int64, error)
}

type runUsecase struct {
	runRepo          repository.RunRepository
	recordRepo       repository.PredictionRecordRepository
	notificationRepo repository.NotificationRepository
	predictor        Predictor
	maxNotifications int
	logger           *zap.Logger
}

// NewRunUsecase creates a new run usecase
func NewRunUsecase(
	runRepo repository.RunRepository,
	recordRepo repository.PredictionRecordRepository,
	notificationRepo repository.NotificationRepository,
	predictor Predictor,
	maxNotifications int,
	logger *zap.Logger,
) RunUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runUsecase{
		runRepo:          runRepo,
		recordRepo:       recordRepo,
		notificationRepo: notificationRepo,
		predictor:        predictor,
		maxNotifications: maxNotifications,
		logger:           logger,
	}
}

func (u *runUsecase) Process(ctx context.Context, input *ProcessRunInput) (*ProcessResult, error) {
	if input == nil {
		return nil, ErrInvalidRequest
	}

	source := input.Source
	if source == "" {
		source = "api"
	}

	run := entity.NewRun(source, len(input.Records))
	if err := u.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	if len(input.Records) == 0 {
		run.Complete(0, 0)
		if err := u.runRepo.Update(ctx, run); err != nil {
			return nil, err
		}
		u.logger.Info("Run completed with no rows", zap.String("run_id", run.ID.String()), zap.String("source", run.Source))
		return &ProcessResult{
			Run:           toRunOutput(run),
			Records:       []*entity.PredictionRecord{},
			Notifications: []*entity.Notification{},
		}, nil
	}

	texts := make([]string, len(input.Records))
	for i, rec := range input.Records {
		texts[i] = rec.Text
	}

	preds, err := u.predictor.PredictDetailed(ctx, texts)
	if err != nil {
		u.fail(ctx, run, err)
		return nil, err
	}

	records := make([]*entity.PredictionRecord, len(preds))
	examRows := 0
	for i, pred := range preds {
		records[i] = entity.NewPredictionRecord(run.ID, i, input.Records[i], pred)
		if pred.IsExam {
			examRows++
		}
	}

	if err := u.recordRepo.CreateBatch(ctx, records); err != nil {
		u.fail(ctx, run, err)
		return nil, fmt.Errorf("store prediction records: %w", err)
	}

	notifications := BuildNotifications(records, u.maxNotifications)
	if len(notifications) > 0 {
		if err := u.notificationRepo.CreateBatch(ctx, notifications); err != nil {
			u.fail(ctx, run, err)
			return nil, fmt.Errorf("store notifications: %w", err)
		}
	}

	run.Complete(examRows, len(notifications))
	if err := u.runRepo.Update(ctx, run); err != nil {
		return nil, err
	}

	u.logger.Info("Run completed",
		zap.String("run_id", run.ID.String()),
		zap.String("source", run.Source),
		zap.Int("rows", run.TotalRows),
		zap.Int("exams", run.ExamRows),
		zap.Int("notifications", run.NotificationRows),
	)

	return &ProcessResult{
		Run:           toRunOutput(run),
		Records:       records,
		Notifications: notifications,
	}, nil
}

func (u *runUsecase) fail(ctx context.Context, run *entity.Run, cause error) {
	run.Fail(cause)
	if err := u.runRepo.Update(ctx, run); err != nil {
		u.logger.Warn("Failed to mark run as failed", zap.String("run_id", run.ID.String()), zap.Error(err))
	}
}

func (u *runUsecase) GetByID(ctx context.Context, id uuid.UUID) (*RunOutput, error) {
	run, err := u.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	return toRunOutput(run), nil
}

func (u *runUsecase) List(ctx context.Context, limit, offset int) (*RunListOutput, error) {
	limit = clampLimit(limit)

	runs, total, err := u.runRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*RunOutput, len(runs))
	for i, r := range runs {
		outputs[i] = toRunOutput(r)
	}

	return &RunListOutput{
		Runs:    outputs,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}, nil
}

func (u *runUsecase) GetRecords(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*RecordOutput, int64, error) {
	if err := u.ensureRun(ctx, runID); err != nil {
		return nil, 0, err
	}

	records, total, err := u.recordRepo.GetByRunIDPaginated(ctx, runID, clampLimit(limit), offset)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*RecordOutput, len(records))
	for i, r := range records {
		outputs[i] = toRecordOutput(r)
	}

	return outputs, total, nil
}

func (u *runUsecase) GetNotifications(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*NotificationOutput, int64, error) {
	if err := u.ensureRun(ctx, runID); err != nil {
		return nil, 0, err
	}

	notifications, total, err := u.notificationRepo.GetByRunIDPaginated(ctx, runID, clampLimit(limit), offset)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*NotificationOutput, len(notifications))
	for i, n := range notifications {
		outputs[i] = toNotificationOutput(n)
	}

	return outputs, total, nil
}

func (u *runUsecase) ensureRun(ctx context.Context, runID uuid.UUID) error {
	run, err := u.runRepo.GetByID(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return ErrRunNotFound
	}
	return nil
}

// Page sizes of run, record and notification listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return min(limit, MaxPageSize)
}

func toRunOutput(r *entity.Run) *RunOutput {
	return &RunOutput{
		RunID:            r.ID,
		Source:           r.Source,
		Status:           string(r.Status),
		TotalRows:        r.TotalRows,
		ExamRows:         r.ExamRows,
		ExamRate:         r.ExamRate(),
		NotificationRows: r.NotificationRows,
		Error:            r.Error,
		CreatedAt:        r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toRecordOutput(r *entity.PredictionRecord) *RecordOutput {
	return &RecordOutput{
		RecordID:   r.ID,
		RowIndex:   r.RowIndex,
		Text:       r.Text,
		Requester:  r.Requester,
		Phone:      r.Phone,
		Label:      r.Label,
		IsExam:     r.IsExam,
		Confidence: r.Confidence,
	}
}

func toNotificationOutput(n *entity.Notification) *NotificationOutput {
	return &NotificationOutput{
		NotificationID: n.ID,
		RecordID:       n.RecordID,
		Phone:          n.Phone,
		Requester:      n.Requester,
		Body:           n.Body,
		Status:         string(n.Status),
	}
}
