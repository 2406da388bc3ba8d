package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	currentUserKey = "current_user"
	requestIDKey   = "request_id"
)

// requestLogger tags each request with an id, taken from X-Request-ID when
// the client sent one, and logs its outcome.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(common.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Header(common.RequestIDHeader, reqID)

		c.Next()

		args := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if u := currentUser(c); u != nil {
			args = append(args, "user_id", u.ID)
		}
		h.log.Info(c.Request.Context(), "request completed", args...)
	}
}

// authenticate resolves the access_token cookie to the current user.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.AccessTokenCookie)
		if err != nil || token == "" {
			fail(c, http.StatusUnauthorized, common.ErrorUnauthorized.Error())
			return
		}

		u, err := h.svc.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				fail(c, http.StatusUnauthorized, common.ErrTokenExpired.Error())
			case errors.Is(err, common.ErrInvalidToken):
				fail(c, http.StatusUnauthorized, common.ErrInvalidToken.Error())
			default:
				h.writeError(c, err)
			}
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || u.Role != models.RoleAdmin {
			fail(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

func (h *Handler) rateLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			h.log.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			fail(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.CurrentUser {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	u, _ := v.(*models.CurrentUser)
	return u
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// actor is the authenticated admin behind the request.
func actor(c *gin.Context) services.Actor {
	a := services.Actor{RequestMeta: requestMeta(c)}
	if u := currentUser(c); u != nil {
		a.ID, a.Email = u.ID, u.Email
	}
	return a
}
