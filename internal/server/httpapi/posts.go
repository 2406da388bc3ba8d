package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPosts(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Posts.List(c.Request.Context(), models.ParsePageRequest(q), models.ParsePostFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.svc.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, p)
}

func (h *Handler) SetPostStatus(c *gin.Context) {
	var req models.StatusChange
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if err := h.svc.Posts.SetStatus(c.Request.Context(), actor(c), id, models.PostStatus(req.Status)); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, fmt.Sprintf("Post %s is now %s", id, req.Status))
}

func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.svc.Posts.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "Post deleted")
}
