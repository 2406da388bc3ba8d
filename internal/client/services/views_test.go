package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersView_ActionsRefetch(t *testing.T) {
	ctx := context.Background()
	api := newFakeUsers(models.User{ID: "u1"}, models.User{ID: "u2"})
	v := NewUsersView(api, 10)
	require.NoError(t, v.Load(ctx))
	assert.Len(t, v.Snapshot().Items, 2)

	require.NoError(t, v.Ban(ctx, "u1"))
	require.NoError(t, v.Activate(ctx, "u2"))
	require.NoError(t, v.Delete(ctx, "u2"))

	assert.Equal(t, models.UserBanned, api.statuses["u1"])
	assert.Equal(t, models.UserActive, api.statuses["u2"])
	assert.Equal(t, 4, api.lists)
}

func TestUsersView_RejectedActionSkipsRefetch(t *testing.T) {
	api := newFakeUsers()
	api.result = models.ActionResult{Success: false, Message: "cannot ban yourself"}
	v := NewUsersView(api, 10)

	err := v.Ban(context.Background(), "me")

	assert.ErrorIs(t, err, ErrActionRejected)
	assert.ErrorContains(t, err, "cannot ban yourself")
	assert.Equal(t, 0, api.lists)
}

func TestUsersView_FetchErrorIsKeptInState(t *testing.T) {
	api := newFakeUsers(models.User{ID: "u1"})
	v := NewUsersView(api, 10)
	require.NoError(t, v.Load(context.Background()))

	api.listErr = &transport.RequestError{Kind: transport.ErrServer, Status: http.StatusInternalServerError}
	err := v.Load(context.Background())

	assert.ErrorIs(t, err, transport.ErrServer)
	s := v.Snapshot()
	assert.Empty(t, s.Items)
	assert.EqualError(t, s.Err, "server error")
}

func TestEmailsView_OpenMarksReadOnce(t *testing.T) {
	ctx := context.Background()
	api := newFakeEmails(models.Email{ID: "e1"}, models.Email{ID: "e2", Read: true})
	v := NewEmailsView(api, 10)

	e, err := v.Open(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, e.Read)
	_, err = v.Open(ctx, "e1")
	require.NoError(t, err)
	_, err = v.Open(ctx, "e2")
	require.NoError(t, err)

	assert.Equal(t, 1, api.reads)
}

func TestEmailsView_DefaultsToInboxAndFiltersStarred(t *testing.T) {
	ctx := context.Background()
	api := newFakeEmails(models.Email{ID: "e1", Starred: true}, models.Email{ID: "e2"}, models.Email{ID: "e3"})
	v := NewEmailsView(api, 10)

	require.NoError(t, v.SetFilters(ctx, models.EmailFilter{Starred: true}))
	assert.Equal(t, models.FolderInbox, api.lastF.Folder)
	items := v.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "e1", items[0].ID)

	require.NoError(t, v.Star(ctx, "e2", true))
	assert.Len(t, v.Snapshot().Items, 2)
}

func TestEmailsView_StarTwiceEqualsOnce(t *testing.T) {
	ctx := context.Background()
	api := newFakeEmails(models.Email{ID: "e1"})
	v := NewEmailsView(api, 10)

	require.NoError(t, v.Star(ctx, "e1", true))
	after1 := *api.emails["e1"]
	require.NoError(t, v.Star(ctx, "e1", true))
	assert.Equal(t, after1, *api.emails["e1"])
}

func TestEmailsView_SendValidates(t *testing.T) {
	api := newFakeEmails()
	v := NewEmailsView(api, 10)

	_, err := v.Send(context.Background(), " ", "subject", "body")
	assert.ErrorIs(t, err, ErrEmptyField)

	e, err := v.Send(context.Background(), "x@example.com", "hello", "body")
	require.NoError(t, err)
	assert.Equal(t, models.FolderSent, e.Folder)
}

func TestUnreadCount(t *testing.T) {
	api := newFakeEmails(models.Email{ID: "e1"}, models.Email{ID: "e2", Read: true}, models.Email{ID: "e3"})
	n, err := UnreadCount(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, api.lastF.UnreadOnly)
}

func TestConversationsView(t *testing.T) {
	ctx := context.Background()
	api := &fakeAgent{convs: []models.Conversation{
		{ID: "c1", Title: "Billing question", UserEmail: "ann@example.com", Status: models.ConversationActive},
		{ID: "c2", Title: "Login issue", UserEmail: "bob@example.com", Status: models.ConversationHuman},
	}}
	v := NewConversationsView(api, 10)

	require.NoError(t, v.SetFilters(ctx, models.ConversationFilter{Search: "BOB"}))
	items := v.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].ID)

	require.NoError(t, v.SetFilters(ctx, models.ConversationFilter{Status: models.ConversationActive}))
	assert.Equal(t, "c1", v.Snapshot().Items[0].ID)

	require.NoError(t, v.Takeover(ctx, "c1"))
	assert.Equal(t, 1, api.takeovers)

	_, err := v.Reply(ctx, "c1", "  ")
	assert.ErrorIs(t, err, ErrEmptyField)
	m, err := v.Reply(ctx, "c1", "on it")
	require.NoError(t, err)
	assert.Equal(t, models.MessageFromAgent, m.Role)

	assert.ErrorIs(t, v.Close(ctx, "c1"), ErrActionRejected)

	msgs, err := v.Messages(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestConversationsView_Analyze(t *testing.T) {
	ctx := context.Background()
	api := &fakeAgent{}
	v := NewConversationsView(api, 10)

	a, err := v.Analyze(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, a.MessageCount)

	api.analyzeErr = &transport.StatusError{Status: http.StatusUnprocessableEntity, Message: "no messages"}
	_, err = v.Analyze(ctx, "c1")
	assert.ErrorIs(t, err, ErrNothingToAnalyze)

	api.analyzeErr = &transport.StatusError{Status: http.StatusNotFound}
	_, err = v.Analyze(ctx, "c1")
	assert.ErrorIs(t, err, transport.ErrNotFound)

	boom := errors.New("boom")
	api.analyzeErr = boom
	_, err = v.Analyze(ctx, "c1")
	assert.ErrorIs(t, err, boom)
}

func TestAuditLogsView_ExportUsesCurrentFilters(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuditLogs{result: models.ExportResult{Success: true, URL: "https://s3/presigned"}}
	v := NewAuditLogsView(api, 10)
	f := models.AuditLogFilter{Action: "user.ban", From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, v.SetFilters(ctx, f))

	url, err := v.Export(ctx)

	require.NoError(t, err)
	assert.Equal(t, "https://s3/presigned", url)
	assert.Equal(t, f, api.exported)

	api.result = models.ExportResult{Success: false, Message: "nothing to export"}
	_, err = v.Export(ctx)
	assert.ErrorIs(t, err, ErrActionRejected)
}

func TestPaymentsView(t *testing.T) {
	ctx := context.Background()
	api := &fakeAnalytics{}
	v := NewPaymentsView(api, 10)
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, v.SetFilters(ctx, models.PaymentFilter{From: from}))

	s, err := v.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12_345), s.TotalRevenue)
	assert.Equal(t, from, api.lastRange.From)

	u, err := v.Usage(ctx, models.DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, models.GranularityDay, u.Granularity)
}

func TestLoadOverview(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(models.User{ID: "u1"})
	emails := newFakeEmails(models.Email{ID: "e1"}, models.Email{ID: "e2", Read: true})

	o, err := LoadOverview(ctx, &fakeAnalytics{}, users, emails, 5)
	require.NoError(t, err)
	assert.Equal(t, "USD", o.Payments.Currency)
	assert.Len(t, o.Usage.Points, 1)
	assert.Len(t, o.Users.Content, 1)
	assert.Equal(t, int64(1), o.UnreadEmails)

	boom := errors.New("summary down")
	_, err = LoadOverview(ctx, &fakeAnalytics{summaryErr: boom}, users, emails, 5)
	assert.ErrorIs(t, err, boom)
}
