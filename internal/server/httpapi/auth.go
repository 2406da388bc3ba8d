package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/services"
	"github.com/gin-gonic/gin"
)

// refreshCookiePath limits the refresh token to the auth endpoints.
const refreshCookiePath = "/api/auth"

func (h *Handler) setSessionCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AccessTokenCookie, pair.AccessToken, int(h.svc.Auth.AccessTokenValidity().Seconds()),
		"/", h.cookieDomain, h.cookieSecure, true)
	c.SetCookie(common.RefreshTokenCookie, pair.RefreshToken, int(h.svc.Auth.RefreshTokenValidity().Seconds()),
		refreshCookiePath, h.cookieDomain, h.cookieSecure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AccessTokenCookie, "", -1, "/", h.cookieDomain, h.cookieSecure, true)
	c.SetCookie(common.RefreshTokenCookie, "", -1, refreshCookiePath, h.cookieDomain, h.cookieSecure, true)
}

// Login checks the credentials and starts a cookie session.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	u, pair, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		h.log.Warn(c.Request.Context(), "login failed", "email", req.Email, "client_ip", c.ClientIP(), "error", err)
		h.writeError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	ok(c, u)
}

// Refresh rotates the refresh token and issues a new access token.
func (h *Handler) Refresh(c *gin.Context) {
	token, err := c.Cookie(common.RefreshTokenCookie)
	if err != nil || token == "" {
		fail(c, http.StatusUnauthorized, common.ErrInvalidToken.Error())
		return
	}

	pair, err := h.svc.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		h.clearSessionCookies(c)
		h.writeError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	action(c, "Session refreshed")
}

// Logout revokes the refresh token and clears both cookies. It succeeds
// without a session.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(common.RefreshTokenCookie); err == nil && token != "" {
		if err := h.svc.Auth.Logout(c.Request.Context(), token); err != nil {
			h.log.Warn(c.Request.Context(), "failed to revoke refresh token", "error", err)
		}
	}
	h.clearSessionCookies(c)
	action(c, "Logged out")
}

func (h *Handler) Check(c *gin.Context) {
	ok(c, currentUser(c))
}
