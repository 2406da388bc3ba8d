package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/gin-gonic/gin"
)

// envelope is the body of every data-bearing response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type actionBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// action answers endpoints that change state but return nothing.
func action(c *gin.Context, message string) {
	c.JSON(http.StatusOK, actionBody{Success: true, Message: message})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, actionBody{Success: false, Message: message})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
}

// writeError maps a service error to its status code. Unknown errors are
// logged and reported as 500 without details.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	fail(c, status, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, common.ErrNoMessages):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
