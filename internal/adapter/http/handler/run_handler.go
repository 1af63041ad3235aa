package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

const csvFormField = "file"

// RunHandler handles requisition run endpoints
type RunHandler struct {
	runUC          usecase.RunUsecase
	maxUploadBytes int64
}

// NewRunHandler creates a new run handler. maxUploadBytes <= 0 disables the limit.
func NewRunHandler(runUC usecase.RunUsecase, maxUploadBytes int64) *RunHandler {
	return &RunHandler{runUC: runUC, maxUploadBytes: maxUploadBytes}
}

// RunCreatedOutput is the response of a processed run
type RunCreatedOutput struct {
	Run    *usecase.RunOutput `json:"run"`
	Labels []string           `json:"labels"`
}

// CreateRun handles POST /api/v1/runs
func (h *RunHandler) CreateRun(c *gin.Context) {
	var input usecase.ProcessRunInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	result, err := h.runUC.Process(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, newRunCreatedOutput(result))
}

// UploadCSV handles POST /api/v1/runs/csv. With ?format=csv the labeled
// file is returned instead of the JSON summary.
func (h *RunHandler) UploadCSV(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(csvFormField)
	if err != nil {
		HandleInvalidRequest(c, fmt.Sprintf("multipart field %q is required", csvFormField))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		HandleInvalidRequest(c, "cannot open uploaded file")
		return
	}
	defer file.Close()

	table, err := csvio.Read(file)
	if err != nil {
		if errors.Is(err, csvio.ErrMissingColumn) {
			HandleUsecaseError(c, err)
			return
		}
		HandleInvalidRequest(c, err.Error())
		return
	}
	if len(table.Records) == 0 {
		HandleInvalidRequest(c, "csv has no rows")
		return
	}

	result, err := h.runUC.Process(c.Request.Context(), &usecase.ProcessRunInput{
		Source:  fileHeader.Filename,
		Records: table.Records,
	})
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	out := newRunCreatedOutput(result)
	if c.Query("format") != "csv" {
		respondSuccess(c, http.StatusCreated, out)
		return
	}

	var buf bytes.Buffer
	if err := csvio.Write(&buf, table, out.Labels); err != nil {
		HandleUsecaseError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resultado_processado.csv"`)
	c.Header("X-Run-ID", out.Run.RunID.String())
	c.Data(http.StatusCreated, "text/csv; charset=utf-8", buf.Bytes())
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, ok := runIDParam(c)
	if !ok {
		return
	}

	output, err := h.runUC.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	page := pageQuery(c)

	output, err := h.runUC.List(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetRecords handles GET /api/v1/runs/:id/records
func (h *RunHandler) GetRecords(c *gin.Context) {
	id, ok := runIDParam(c)
	if !ok {
		return
	}
	page := pageQuery(c)

	records, total, err := h.runUC.GetRecords(c.Request.Context(), id, page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondPage(c, records, total, page)
}

// GetNotifications handles GET /api/v1/runs/:id/notifications
func (h *RunHandler) GetNotifications(c *gin.Context) {
	id, ok := runIDParam(c)
	if !ok {
		return
	}
	page := pageQuery(c)

	notifications, total, err := h.runUC.GetNotifications(c.Request.Context(), id, page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondPage(c, notifications, total, page)
}

func newRunCreatedOutput(result *usecase.ProcessResult) *RunCreatedOutput {
	labels := make([]string, len(result.Records))
	for i, rec := range result.Records {
		labels[i] = rec.Label
	}
	return &RunCreatedOutput{Run: result.Run, Labels: labels}
}
