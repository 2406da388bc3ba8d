package httpapi

import (
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListConversations(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Agent.List(c.Request.Context(), models.ParsePageRequest(q), models.ParseConversationFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) ConversationMessages(c *gin.Context) {
	msgs, err := h.svc.Agent.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, msgs)
}

func (h *Handler) TakeoverConversation(c *gin.Context) {
	if err := h.svc.Agent.Takeover(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "Conversation taken over")
}

func (h *Handler) ReplyConversation(c *gin.Context) {
	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.Agent.Reply(c.Request.Context(), actor(c), c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, m)
}

// AnalyzeConversation answers 422 for a conversation without messages.
func (h *Handler) AnalyzeConversation(c *gin.Context) {
	a, err := h.svc.Agent.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, a)
}

func (h *Handler) CloseConversation(c *gin.Context) {
	if err := h.svc.Agent.Close(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "Conversation closed")
}
