package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// Page is the window requested from a run, record or notification listing
type Page struct {
	Limit  int
	Offset int
}

// pageQuery reads ?limit= and ?offset=. A missing or bad limit means one
// default-sized page, a bad offset means the first page.
func pageQuery(c *gin.Context) *Page {
	page := &Page{Limit: usecase.DefaultPageSize}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		page.Limit = min(limit, usecase.MaxPageSize)
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		page.Offset = offset
	}

	return page
}

// runIDParam parses the :id path parameter, answering 400 when it is not a UUID
func runIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleInvalidUUID(c, "run id")
		return uuid.Nil, false
	}
	return id, true
}
