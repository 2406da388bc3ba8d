// Package httpapi exposes the admin services over HTTP with gin. Responses
// use the {success, message, data} envelope; session credentials travel in
// the access_token and refresh_token cookies.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/logging"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/config"
	"github.com/dmitrijs2005/adminconsole/internal/server/services"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Login(ctx context.Context, email, password string, meta services.RequestMeta) (*models.CurrentUser, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*models.CurrentUser, error)
	AccessTokenValidity() time.Duration
	RefreshTokenValidity() time.Duration
}

type UserService interface {
	List(ctx context.Context, p models.PageRequest, f models.UserFilter) (*models.Page[models.User], error)
	Get(ctx context.Context, id string) (*models.User, error)
	SetStatus(ctx context.Context, actor services.Actor, id string, status models.UserStatus) error
	Delete(ctx context.Context, actor services.Actor, id string) error
}

type PostService interface {
	List(ctx context.Context, p models.PageRequest, f models.PostFilter) (*models.Page[models.Post], error)
	Get(ctx context.Context, id string) (*models.Post, error)
	SetStatus(ctx context.Context, actor services.Actor, id string, status models.PostStatus) error
	Delete(ctx context.Context, actor services.Actor, id string) error
}

type AuditService interface {
	List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) (*models.Page[models.AuditLog], error)
	Get(ctx context.Context, id string) (*models.AuditLog, error)
	Export(ctx context.Context, actor services.Actor, f models.AuditLogFilter) (*models.ExportResult, error)
}

type EmailService interface {
	List(ctx context.Context, p models.PageRequest, f models.EmailFilter) (*models.Page[models.Email], error)
	Get(ctx context.Context, id string) (*models.Email, error)
	MarkRead(ctx context.Context, id string) error
	SetStarred(ctx context.Context, id string, starred bool) error
	Delete(ctx context.Context, actor services.Actor, id string) error
	Send(ctx context.Context, actor services.Actor, req models.SendEmailRequest) (*models.Email, error)
}

type AgentService interface {
	List(ctx context.Context, p models.PageRequest, f models.ConversationFilter) (*models.Page[models.Conversation], error)
	Messages(ctx context.Context, id string) ([]models.ChatMessage, error)
	Takeover(ctx context.Context, actor services.Actor, id string) error
	Reply(ctx context.Context, actor services.Actor, id, content string) (*models.ChatMessage, error)
	Close(ctx context.Context, actor services.Actor, id string) error
	Analyze(ctx context.Context, id string) (*models.ConversationAnalysis, error)
}

type AnalyticsService interface {
	Payments(ctx context.Context, p models.PageRequest, f models.PaymentFilter) (*models.Page[models.Payment], error)
	PaymentSummary(ctx context.Context, r models.DateRange) (*models.PaymentSummary, error)
	Usage(ctx context.Context, r models.DateRange, g models.Granularity) (*models.UsageStats, error)
}

// Services groups the dependencies of Handler.
type Services struct {
	Auth      AuthService
	Users     UserService
	Posts     PostService
	Audit     AuditService
	Emails    EmailService
	Agent     AgentService
	Analytics AnalyticsService
}

type Handler struct {
	svc          Services
	log          logging.Logger
	cookieSecure bool
	cookieDomain string
	loginLimiter *ipLimiter
}

func NewHandler(svc Services, cfg *config.Config, log logging.Logger) *Handler {
	return &Handler{
		svc:          svc,
		log:          log,
		cookieSecure: cfg.CookieSecure,
		cookieDomain: cfg.CookieDomain,
		loginLimiter: newIPLimiter(cfg.LoginRPS, cfg.LoginBurst),
	}
}

// Router builds the gin engine serving every endpoint under /api.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "resource not found")
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", h.rateLimit(h.loginLimiter), h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/check", h.authenticate(), h.Check)
	}

	admin := api.Group("")
	admin.Use(h.authenticate(), h.requireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PATCH("/users/:id/status", h.SetUserStatus)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/posts", h.ListPosts)
		admin.GET("/posts/:id", h.GetPost)
		admin.PATCH("/posts/:id/status", h.SetPostStatus)
		admin.DELETE("/posts/:id", h.DeletePost)

		admin.GET("/audit-logs", h.ListAuditLogs)
		admin.GET("/audit-logs/:id", h.GetAuditLog)
		admin.POST("/audit-logs/export", h.ExportAuditLogs)

		admin.GET("/emails", h.ListEmails)
		admin.POST("/emails", h.SendEmail)
		admin.GET("/emails/:id", h.GetEmail)
		admin.PUT("/emails/:id/read", h.MarkEmailRead)
		admin.PUT("/emails/:id/star", h.StarEmail)
		admin.DELETE("/emails/:id", h.DeleteEmail)

		conv := admin.Group("/ai-agent/conversations")
		conv.GET("", h.ListConversations)
		conv.GET("/:id/messages", h.ConversationMessages)
		conv.POST("/:id/messages", h.ReplyConversation)
		conv.POST("/:id/takeover", h.TakeoverConversation)
		conv.POST("/:id/analyze", h.AnalyzeConversation)
		conv.POST("/:id/close", h.CloseConversation)

		admin.GET("/analytics/payments/summary", h.PaymentSummary)
		admin.GET("/analytics/payments", h.ListPayments)
		admin.GET("/analytics/usage", h.Usage)
	}
	return r
}
