package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/services"
)

var (
	adminUser  = &models.CurrentUser{ID: "admin-1", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin}
	plainUser  = &models.CurrentUser{ID: "u2", Email: "ann@example.com", Name: "Ann", Role: models.RoleUser}
	adminToken = "admin-token"
	userToken  = "user-token"
)

// fakeAuth knows two access tokens and one refresh token.
type fakeAuth struct {
	loginErr   error
	refreshErr error
	authErr    error
	loggedOut  []string
	lastMeta   services.RequestMeta
}

func (f *fakeAuth) Login(_ context.Context, email, password string, meta services.RequestMeta) (*models.CurrentUser, *services.TokenPair, error) {
	f.lastMeta = meta
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	if email != adminUser.Email || password != "secret" {
		return nil, nil, common.ErrInvalidCredentials
	}
	return adminUser, &services.TokenPair{AccessToken: adminToken, RefreshToken: "refresh-1"}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, token string) (*services.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if token != "refresh-1" {
		return nil, common.ErrInvalidToken
	}
	return &services.TokenPair{AccessToken: adminToken, RefreshToken: "refresh-2"}, nil
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*models.CurrentUser, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	switch token {
	case adminToken:
		return adminUser, nil
	case userToken:
		return plainUser, nil
	}
	return nil, common.ErrInvalidToken
}

func (f *fakeAuth) AccessTokenValidity() time.Duration  { return time.Minute }
func (f *fakeAuth) RefreshTokenValidity() time.Duration { return time.Hour }

// call records the arguments of the last mutating call.
type call struct {
	actor  services.Actor
	id     string
	status string
}

type fakeUsers struct {
	err      error
	lastPage models.PageRequest
	lastF    models.UserFilter
	last     call
}

func (f *fakeUsers) List(_ context.Context, p models.PageRequest, flt models.UserFilter) (*models.Page[models.User], error) {
	f.lastPage, f.lastF = p, flt
	if f.err != nil {
		return nil, f.err
	}
	page := models.NewPage([]models.User{{ID: "u2", Email: "ann@example.com"}}, p, 1)
	return &page, nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	if id != "u2" {
		return nil, common.ErrorNotFound
	}
	return &models.User{ID: "u2", Email: "ann@example.com"}, nil
}

func (f *fakeUsers) SetStatus(_ context.Context, a services.Actor, id string, status models.UserStatus) error {
	f.last = call{actor: a, id: id, status: string(status)}
	return f.err
}

func (f *fakeUsers) Delete(_ context.Context, a services.Actor, id string) error {
	f.last = call{actor: a, id: id}
	return f.err
}

type fakePosts struct {
	err   error
	lastF models.PostFilter
	last  call
}

func (f *fakePosts) List(_ context.Context, p models.PageRequest, flt models.PostFilter) (*models.Page[models.Post], error) {
	f.lastF = flt
	page := models.NewPage([]models.Post{{ID: "p1", Title: "Hello"}}, p, 1)
	return &page, f.err
}

func (f *fakePosts) Get(_ context.Context, id string) (*models.Post, error) {
	return &models.Post{ID: id}, f.err
}

func (f *fakePosts) SetStatus(_ context.Context, a services.Actor, id string, status models.PostStatus) error {
	f.last = call{actor: a, id: id, status: string(status)}
	return f.err
}

func (f *fakePosts) Delete(_ context.Context, a services.Actor, id string) error {
	f.last = call{actor: a, id: id}
	return f.err
}

type fakeAudit struct {
	err        error
	lastF      models.AuditLogFilter
	lastExport models.AuditLogFilter
	exportedBy services.Actor
}

func (f *fakeAudit) List(_ context.Context, p models.PageRequest, flt models.AuditLogFilter) (*models.Page[models.AuditLog], error) {
	f.lastF = flt
	page := models.NewPage([]models.AuditLog{{ID: "a1", Action: "user.status"}}, p, 1)
	return &page, f.err
}

func (f *fakeAudit) Get(_ context.Context, id string) (*models.AuditLog, error) {
	return &models.AuditLog{ID: id}, f.err
}

func (f *fakeAudit) Export(_ context.Context, a services.Actor, flt models.AuditLogFilter) (*models.ExportResult, error) {
	f.exportedBy, f.lastExport = a, flt
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExportResult{Success: true, Message: "Exported 1 entries", URL: "https://s3.local/exports/a.csv?sig=1"}, nil
}

type fakeEmails struct {
	err     error
	read    []string
	starred map[string]bool
	sent    []models.SendEmailRequest
	last    call
}

func (f *fakeEmails) List(_ context.Context, p models.PageRequest, _ models.EmailFilter) (*models.Page[models.Email], error) {
	page := models.NewPage([]models.Email{{ID: "e1"}}, p, 1)
	return &page, f.err
}

func (f *fakeEmails) Get(_ context.Context, id string) (*models.Email, error) {
	return &models.Email{ID: id}, f.err
}

func (f *fakeEmails) MarkRead(_ context.Context, id string) error {
	f.read = append(f.read, id)
	return f.err
}

func (f *fakeEmails) SetStarred(_ context.Context, id string, starred bool) error {
	if f.starred == nil {
		f.starred = map[string]bool{}
	}
	f.starred[id] = starred
	return f.err
}

func (f *fakeEmails) Delete(_ context.Context, a services.Actor, id string) error {
	f.last = call{actor: a, id: id}
	return f.err
}

func (f *fakeEmails) Send(_ context.Context, a services.Actor, req models.SendEmailRequest) (*models.Email, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &models.Email{ID: "sent-1", Folder: models.FolderSent, From: a.Email, To: req.To, Subject: req.Subject}, nil
}

type fakeAgent struct {
	err       error
	analyzeFn func(id string) (*models.ConversationAnalysis, error)
	replies   []string
	last      call
}

func (f *fakeAgent) List(_ context.Context, p models.PageRequest, _ models.ConversationFilter) (*models.Page[models.Conversation], error) {
	page := models.NewPage([]models.Conversation{{ID: "c1"}}, p, 1)
	return &page, f.err
}

func (f *fakeAgent) Messages(_ context.Context, id string) ([]models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.ChatMessage{{ID: "m1", ConversationID: id, Role: models.MessageFromUser, Content: "hi"}}, nil
}

func (f *fakeAgent) Takeover(_ context.Context, a services.Actor, id string) error {
	f.last = call{actor: a, id: id, status: "takeover"}
	return f.err
}

func (f *fakeAgent) Reply(_ context.Context, a services.Actor, id, content string) (*models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = call{actor: a, id: id}
	f.replies = append(f.replies, content)
	return &models.ChatMessage{ID: "m2", ConversationID: id, Role: models.MessageFromAgent, Content: content}, nil
}

func (f *fakeAgent) Close(_ context.Context, a services.Actor, id string) error {
	f.last = call{actor: a, id: id, status: "close"}
	return f.err
}

func (f *fakeAgent) Analyze(_ context.Context, id string) (*models.ConversationAnalysis, error) {
	return f.analyzeFn(id)
}

type fakeAnalytics struct {
	err       error
	lastRange models.DateRange
	lastGran  models.Granularity
	lastF     models.PaymentFilter
}

func (f *fakeAnalytics) Payments(_ context.Context, p models.PageRequest, flt models.PaymentFilter) (*models.Page[models.Payment], error) {
	f.lastF = flt
	page := models.NewPage([]models.Payment{{ID: "pay1", Amount: 1999, Currency: "USD"}}, p, 1)
	return &page, f.err
}

func (f *fakeAnalytics) PaymentSummary(_ context.Context, r models.DateRange) (*models.PaymentSummary, error) {
	f.lastRange = r
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentSummary{TotalRevenue: 1999, Currency: "USD", ByPlan: []models.PlanRevenue{}}, nil
}

func (f *fakeAnalytics) Usage(_ context.Context, r models.DateRange, g models.Granularity) (*models.UsageStats, error) {
	f.lastRange, f.lastGran = r, g
	if f.err != nil {
		return nil, f.err
	}
	if g == "" {
		g = models.GranularityDay
	}
	return &models.UsageStats{Granularity: g, Points: []models.UsagePoint{}}, nil
}
