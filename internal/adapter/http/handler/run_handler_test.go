package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// MockRunUsecase is a mock implementation of RunUsecase
type MockRunUsecase struct {
	mock.Mock
}

func (m *MockRunUsecase) Process(ctx context.Context, input *usecase.ProcessRunInput) (*usecase.ProcessResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProcessResult), args.Error(1)
}

func (m *MockRunUsecase) GetByID(ctx context.Context, id uuid.UUID) (*usecase.RunOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RunOutput), args.Error(1)
}

func (m *MockRunUsecase) List(ctx context.Context, limit, offset int) (*usecase.RunListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RunListOutput), args.Error(1)
}

func (m *MockRunUsecase) GetRecords(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*usecase.RecordOutput, int64, error) {
	args := m.Called(ctx, runID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*usecase.RecordOutput), args.Get(1).(int64), args.Error(2)
}

func (m *MockRunUsecase) GetNotifications(ctx context.Context, runID uuid.UUID, limit, offset int) ([]*usecase.NotificationOutput, int64, error) {
	args := m.Called(ctx, runID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*usecase.NotificationOutput), args.Get(1).(int64), args.Error(2)
}

func setupRunRouter(h *RunHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/runs", h.CreateRun)
	r.POST("/api/v1/runs/csv", h.UploadCSV)
	r.GET("/api/v1/runs", h.ListRuns)
	r.GET("/api/v1/runs/:id", h.GetRun)
	r.GET("/api/v1/runs/:id/records", h.GetRecords)
	r.GET("/api/v1/runs/:id/notifications", h.GetNotifications)
	return r
}

func processResult(runID uuid.UUID, labels ...string) *usecase.ProcessResult {
	records := make([]*entity.PredictionRecord, len(labels))
	for i, l := range labels {
		records[i] = &entity.PredictionRecord{RunID: runID, RowIndex: i, Label: l, IsExam: l != entity.NotImageExam}
	}
	return &usecase.ProcessResult{
		Run:     &usecase.RunOutput{RunID: runID, Status: "completed", TotalRows: len(labels)},
		Records: records,
	}
}

func multipartCSV(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "lote.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestCreateRun_Success(t *testing.T) {
	uc := new(MockRunUsecase)
	router := setupRunRouter(NewRunHandler(uc, 0))

	runID := uuid.New()
	uc.On("Process", mock.Anything, mock.MatchedBy(func(in *usecase.ProcessRunInput) bool {
		return in.Source == "crm" && len(in.Records) == 2 && in.Records[1].Phone == "+55"
	})).Return(processResult(runID, "Tomografia", entity.NotImageExam), nil)

	w := postJSON(router, "/api/v1/runs", map[string]any{
		"source": "crm",
		"records": []map[string]string{
			{"text": "tc de cranio", "requester": "Ana"},
			{"text": "dipirona", "phone": "+55"},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data RunCreatedOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, runID, resp.Data.Run.RunID)
	assert.Equal(t, []string{"Tomografia", entity.NotImageExam}, resp.Data.Labels)
}

func TestCreateRun_EmptyRecords(t *testing.T) {
	uc := new(MockRunUsecase)
	router := setupRunRouter(NewRunHandler(uc, 0))

	w := postJSON(router, "/api/v1/runs", map[string]any{"records": []any{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestUploadCSV(t *testing.T) {
	const content = "DS_RECEITA,SOLICITANTE,TEL\ntc de cranio,Ana,1\ndipirona,Bruno,2\n"

	t.Run("returns JSON summary", func(t *testing.T) {
		uc := new(MockRunUsecase)
		router := setupRunRouter(NewRunHandler(uc, 1<<20))

		uc.On("Process", mock.Anything, mock.MatchedBy(func(in *usecase.ProcessRunInput) bool {
			return in.Source == "lote.csv" && len(in.Records) == 2 && in.Records[0].Requester == "Ana"
		})).Return(processResult(uuid.New(), "Tomografia", entity.NotImageExam), nil)

		body, contentType := multipartCSV(t, content)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/runs/csv", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"labels":["Tomografia"`)
	})

	t.Run("returns labeled CSV", func(t *testing.T) {
		uc := new(MockRunUsecase)
		router := setupRunRouter(NewRunHandler(uc, 0))

		runID := uuid.New()
		uc.On("Process", mock.Anything, mock.Anything).Return(processResult(runID, "Tomografia", entity.NotImageExam), nil)

		body, contentType := multipartCSV(t, content)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/runs/csv?format=csv", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, runID.String(), w.Header().Get("X-Run-ID"))
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "DS_RECEITA,SOLICITANTE,TEL,exame_resultado", lines[0])
		assert.Equal(t, "tc de cranio,Ana,1,Tomografia", lines[1])
	})

	t.Run("rejects CSV without text column", func(t *testing.T) {
		uc := new(MockRunUsecase)
		router := setupRunRouter(NewRunHandler(uc, 0))

		body, contentType := multipartCSV(t, "A,B\n1,2\n")
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/runs/csv", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CSV")
	})

	t.Run("requires file field", func(t *testing.T) {
		router := setupRunRouter(NewRunHandler(new(MockRunUsecase), 0))

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/runs/csv", strings.NewReader(""))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRun(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		uc := new(MockRunUsecase)
		router := setupRunRouter(NewRunHandler(uc, 0))

		id := uuid.New()
		uc.On("GetByID", mock.Anything, id).Return(&usecase.RunOutput{RunID: id, Status: "completed"}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
	})

	t.Run("not found", func(t *testing.T) {
		uc := new(MockRunUsecase)
		router := setupRunRouter(NewRunHandler(uc, 0))

		uc.On("GetByID", mock.Anything, mock.Anything).Return(nil, usecase.ErrRunNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router := setupRunRouter(NewRunHandler(new(MockRunUsecase), 0))

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid run id")
	})
}

func TestListRuns_WithPagination(t *testing.T) {
	uc := new(MockRunUsecase)
	router := setupRunRouter(NewRunHandler(uc, 0))

	uc.On("List", mock.Anything, 10, 5).Return(&usecase.RunListOutput{Runs: []*usecase.RunOutput{}, Limit: 10, Offset: 5}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs?limit=10&offset=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestGetRecords(t *testing.T) {
	uc := new(MockRunUsecase)
	router := setupRunRouter(NewRunHandler(uc, 0))

	id := uuid.New()
	uc.On("GetRecords", mock.Anything, id, usecase.DefaultPageSize, 0).Return([]*usecase.RecordOutput{
		{RowIndex: 0, Label: "Tomografia", IsExam: true},
	}, int64(1), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String()+"/records", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta.Page)
	assert.Equal(t, int64(1), resp.Meta.Page.Total)
	assert.False(t, resp.Meta.Page.HasMore)
}

func TestGetNotifications_RunNotFound(t *testing.T) {
	uc := new(MockRunUsecase)
	router := setupRunRouter(NewRunHandler(uc, 0))

	uc.On("GetNotifications", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, int64(0), usecase.ErrRunNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/runs/"+uuid.New().String()+"/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
