package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Audit.List(c.Request.Context(), models.ParsePageRequest(q), models.ParseAuditLogFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) GetAuditLog(c *gin.Context) {
	e, err := h.svc.Audit.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, e)
}

// ExportAuditLogs answers with {success, message, url} rather than the
// data envelope. An empty body exports everything.
func (h *Handler) ExportAuditLogs(c *gin.Context) {
	var req models.AuditExportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	res, err := h.svc.Audit.Export(c.Request.Context(), actor(c), models.AuditLogFilter{
		Action:       req.Action,
		Actor:        req.Actor,
		ResourceType: req.ResourceType,
		From:         req.From,
		To:           req.To,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
