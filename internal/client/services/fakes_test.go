package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type fakeUsers struct {
	mu       sync.Mutex
	users    []models.User
	lists    int
	statuses map[string]models.UserStatus
	result   models.ActionResult
	listErr  error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	return &fakeUsers{users: users, statuses: map[string]models.UserStatus{}, result: models.ActionResult{Success: true}}
}

func (f *fakeUsers) List(_ context.Context, p models.PageRequest, _ models.UserFilter) (models.Page[models.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return models.Page[models.User]{}, f.listErr
	}
	return models.NewPage(f.users, p, int64(len(f.users))), nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (models.User, error) {
	return models.User{ID: id}, nil
}

func (f *fakeUsers) SetStatus(_ context.Context, id string, s models.UserStatus) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = s
	return f.result, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) (models.ActionResult, error) {
	return f.result, nil
}

type fakeEmails struct {
	mu      sync.Mutex
	emails  map[string]*models.Email
	reads   int
	stars   map[string]bool
	lists   int
	lastF   models.EmailFilter
	listErr error
}

func newFakeEmails(emails ...models.Email) *fakeEmails {
	f := &fakeEmails{emails: map[string]*models.Email{}, stars: map[string]bool{}}
	for i := range emails {
		e := emails[i]
		f.emails[e.ID] = &e
	}
	return f
}

func (f *fakeEmails) List(_ context.Context, p models.PageRequest, flt models.EmailFilter) (models.Page[models.Email], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.lastF = flt
	if f.listErr != nil {
		return models.Page[models.Email]{}, f.listErr
	}
	var out []models.Email
	for _, id := range []string{"e1", "e2", "e3"} {
		if e, ok := f.emails[id]; ok && (!flt.UnreadOnly || !e.Read) {
			out = append(out, *e)
		}
	}
	return models.NewPage(out, p, int64(len(out))), nil
}

func (f *fakeEmails) Get(_ context.Context, id string) (models.Email, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.emails[id], nil
}

func (f *fakeEmails) MarkRead(_ context.Context, id string) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	f.emails[id].Read = true
	return models.ActionResult{Success: true}, nil
}

func (f *fakeEmails) Star(_ context.Context, id string, starred bool) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stars[id] = starred
	f.emails[id].Starred = starred
	return models.ActionResult{Success: true}, nil
}

func (f *fakeEmails) Delete(_ context.Context, id string) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.emails, id)
	return models.ActionResult{Success: true}, nil
}

func (f *fakeEmails) Send(_ context.Context, req models.SendEmailRequest) (models.Email, error) {
	return models.Email{ID: "sent1", Folder: models.FolderSent, To: req.To, Subject: req.Subject}, nil
}

type fakeAgent struct {
	convs      []models.Conversation
	analyzeErr error
	replies    []string
	takeovers  int
}

func (f *fakeAgent) Conversations(_ context.Context, p models.PageRequest, _ models.ConversationFilter) (models.Page[models.Conversation], error) {
	return models.NewPage(f.convs, p, int64(len(f.convs))), nil
}

func (f *fakeAgent) Messages(context.Context, string) ([]models.ChatMessage, error) {
	return []models.ChatMessage{{ID: "m1", Role: models.MessageFromUser, Content: "hi"}}, nil
}

func (f *fakeAgent) Takeover(context.Context, string) (models.ActionResult, error) {
	f.takeovers++
	return models.ActionResult{Success: true}, nil
}

func (f *fakeAgent) Reply(_ context.Context, id, content string) (models.ChatMessage, error) {
	f.replies = append(f.replies, content)
	return models.ChatMessage{ID: "m2", ConversationID: id, Role: models.MessageFromAgent, Content: content}, nil
}

func (f *fakeAgent) Analyze(_ context.Context, id string) (models.ConversationAnalysis, error) {
	if f.analyzeErr != nil {
		return models.ConversationAnalysis{}, f.analyzeErr
	}
	return models.ConversationAnalysis{ConversationID: id, MessageCount: 4}, nil
}

func (f *fakeAgent) Close(context.Context, string) (models.ActionResult, error) {
	return models.ActionResult{Success: false, Message: "already closed"}, nil
}

type fakeAuditLogs struct {
	exported models.AuditLogFilter
	result   models.ExportResult
}

func (f *fakeAuditLogs) List(_ context.Context, p models.PageRequest, _ models.AuditLogFilter) (models.Page[models.AuditLog], error) {
	return models.NewPage([]models.AuditLog{{ID: "l1"}}, p, 1), nil
}

func (f *fakeAuditLogs) Get(_ context.Context, id string) (models.AuditLog, error) {
	return models.AuditLog{ID: id}, nil
}

func (f *fakeAuditLogs) Export(_ context.Context, flt models.AuditLogFilter) (models.ExportResult, error) {
	f.exported = flt
	return f.result, nil
}

type fakeAnalytics struct {
	summaryErr error
	lastRange  models.DateRange
}

func (f *fakeAnalytics) PaymentSummary(_ context.Context, r models.DateRange) (models.PaymentSummary, error) {
	f.lastRange = r
	if f.summaryErr != nil {
		return models.PaymentSummary{}, f.summaryErr
	}
	return models.PaymentSummary{TotalRevenue: 12_345, Currency: "USD", SuccessfulCount: 3}, nil
}

func (f *fakeAnalytics) Payments(_ context.Context, p models.PageRequest, _ models.PaymentFilter) (models.Page[models.Payment], error) {
	return models.NewPage([]models.Payment{{ID: "p1", Amount: 999}}, p, 1), nil
}

func (f *fakeAnalytics) Usage(_ context.Context, _ models.DateRange, g models.Granularity) (models.UsageStats, error) {
	return models.UsageStats{Granularity: g, Points: []models.UsagePoint{{ActiveUsers: 5}}}, nil
}
