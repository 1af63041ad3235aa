package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
)

const csvContentType = "text/csv"

// ObjectLayout names where raw exports live and where results are written
type ObjectLayout struct {
	RawPrefix       string
	ProcessedObject string
}

// ObjectResult describes one processed storage object
type ObjectResult struct {
	Source string     `json:"source"`
	Output string     `json:"output"`
	Run    *RunOutput `json:"run"`
}

// ObjectUsecase processes CSV exports dropped into object storage
type ObjectUsecase interface {
	ListRaw(ctx context.Context) ([]string, error)
	ProcessObject(ctx context.Context, name string) (*ObjectResult, error)
}

type objectUsecase struct {
	store  repository.ObjectStore
	runs   RunUsecase
	layout ObjectLayout
	logger *zap.Logger
}

// NewObjectUsecase creates a new object usecase
func NewObjectUsecase(store repository.ObjectStore, runs RunUsecase, layout ObjectLayout, logger *zap.Logger) ObjectUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &objectUsecase{
		store:  store,
		runs:   runs,
		layout: layout,
		logger: logger,
	}
}

func (u *objectUsecase) ListRaw(ctx context.Context) ([]string, error) {
	names, err := u.store.List(ctx, u.layout.RawPrefix)
	if err != nil {
		return nil, err
	}

	csvs := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(strings.ToLower(n), ".csv") {
			csvs = append(csvs, n)
		}
	}
	return csvs, nil
}

// ProcessObject classifies a raw export and uploads the labeled CSV.
// A bare file name is resolved under the raw prefix.
func (u *objectUsecase) ProcessObject(ctx context.Context, name string) (*ObjectResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidRequest
	}
	if !strings.HasPrefix(name, u.layout.RawPrefix) {
		name = u.layout.RawPrefix + name
	}

	body, err := u.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	table, err := csvio.Read(body)
	_ = body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, name, err)
	}

	result, err := u.runs.Process(ctx, &ProcessRunInput{Source: name, Records: table.Records})
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(result.Records))
	for i, rec := range result.Records {
		labels[i] = rec.Label
	}

	var buf bytes.Buffer
	if err := csvio.Write(&buf, table, labels); err != nil {
		return nil, err
	}
	if err := u.store.Put(ctx, u.layout.ProcessedObject, &buf, int64(buf.Len()), csvContentType); err != nil {
		return nil, err
	}

	u.logger.Info("Object processed",
		zap.String("source", name),
		zap.String("output", u.layout.ProcessedObject),
		zap.String("run_id", result.Run.RunID.String()),
	)

	return &ObjectResult{
		Source: name,
		Output: u.layout.ProcessedObject,
		Run:    result.Run,
	}, nil
}
