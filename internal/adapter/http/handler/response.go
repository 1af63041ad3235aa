package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response represents the standard API response structure
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	Timestamp string    `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Page      *PageInfo `json:"page,omitempty"`
}

// PageInfo describes one page of a paginated listing
type PageInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

func newMeta(c *gin.Context) *MetaInfo {
	return &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	}
}

// requestID returns the id set by the RequestID middleware, or a fresh one
func requestID(c *gin.Context) string {
	id := c.GetString("request_id")
	if id == "" {
		id = uuid.New().String()
		c.Set("request_id", id)
	}
	return id
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c),
	})
}

func respondPage(c *gin.Context, data interface{}, total int64, page *Page) {
	meta := newMeta(c)
	meta.Page = &PageInfo{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: int64(page.Offset+page.Limit) < total,
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Meta: newMeta(c),
	})
}
