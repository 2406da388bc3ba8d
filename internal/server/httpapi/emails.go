package httpapi

import (
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListEmails(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Emails.List(c.Request.Context(), models.ParsePageRequest(q), models.ParseEmailFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) GetEmail(c *gin.Context) {
	e, err := h.svc.Emails.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, e)
}

func (h *Handler) MarkEmailRead(c *gin.Context) {
	if err := h.svc.Emails.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "Marked as read")
}

func (h *Handler) StarEmail(c *gin.Context) {
	var req models.StarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Emails.SetStarred(c.Request.Context(), c.Param("id"), req.Starred); err != nil {
		h.writeError(c, err)
		return
	}
	if req.Starred {
		action(c, "Starred")
		return
	}
	action(c, "Unstarred")
}

func (h *Handler) DeleteEmail(c *gin.Context) {
	if err := h.svc.Emails.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "Email deleted")
}

func (h *Handler) SendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.svc.Emails.Send(c.Request.Context(), actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, e)
}
