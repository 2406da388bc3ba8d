package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Users.List(c.Request.Context(), models.ParsePageRequest(q), models.ParseUserFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.svc.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, u)
}

func (h *Handler) SetUserStatus(c *gin.Context) {
	var req models.StatusChange
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if err := h.svc.Users.SetStatus(c.Request.Context(), actor(c), id, models.UserStatus(req.Status)); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, fmt.Sprintf("User %s is now %s", id, req.Status))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.svc.Users.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	action(c, "User deleted")
}
