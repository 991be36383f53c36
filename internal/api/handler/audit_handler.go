package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/core/ports"
)

// AuditHandler serves the audit trail read endpoint.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /api/logs — newest entries first. Gated.
//
// @Summary      List audit log entries
// @Tags         logs
// @Produce      json
// @Security     SessionCookie
// @Param        limit  query     int  false  "Maximum entries to return (default 100)"
// @Success      200    {array}   auditEntryResponse
// @Failure      403    {object}  errorResponse
// @Router       /logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuditResponse(entries))
}
