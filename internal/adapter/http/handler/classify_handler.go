package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// ClassifyHandler handles ad hoc classification requests
type ClassifyHandler struct {
	classifyUC usecase.ClassifyUsecase
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(classifyUC usecase.ClassifyUsecase) *ClassifyHandler {
	return &ClassifyHandler{classifyUC: classifyUC}
}

// RuleLabelRequest is the body of POST /api/v1/rules/label
type RuleLabelRequest struct {
	Text string `json:"text" binding:"required"`
}

// Classify handles POST /api/v1/classify
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.classifyUC.Classify(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// LabelByRules handles POST /api/v1/rules/label
func (h *ClassifyHandler) LabelByRules(c *gin.Context) {
	var req RuleLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, h.classifyUC.LabelByRules(req.Text))
}
