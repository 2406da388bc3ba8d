package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	smodels "github.com/dmitrijs2005/adminconsole/internal/server/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/auditlogs"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/emails"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/payments"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/posts"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu       sync.Mutex
	accounts map[string]*smodels.Account
	err      error
	created  []*smodels.Account
}

func newFakeUsers(accounts ...*smodels.Account) *fakeUsersRepo {
	f := &fakeUsersRepo{accounts: map[string]*smodels.Account{}}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeUsersRepo) List(_ context.Context, p models.PageRequest, _ models.UserFilter) ([]models.User, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []models.User{}
	for _, a := range f.accounts {
		out = append(out, a.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUsersRepo) Get(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := a.User
	return &u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*smodels.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Create(_ context.Context, a *smodels.Account) (*smodels.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a.ID = "new"
	f.created = append(f.created, a)
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeUsersRepo) SetStatus(_ context.Context, id string, status models.UserStatus) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeUsersRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.accounts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeUsersRepo) TouchLastLogin(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	now := time.Now()
	a.LastLoginAt = &now
	return nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	tokens    map[string]*smodels.RefreshToken
	createErr error
	deleted   []string
}

func newFakeRefresh() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*smodels.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &smodels.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Consume(_ context.Context, token string) (*smodels.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.tokens, token)
	return t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.tokens, token)
	return nil
}

// --- posts ---

type fakePostsRepo struct {
	posts map[string]*models.Post
}

func (f *fakePostsRepo) List(context.Context, models.PageRequest, models.PostFilter) ([]models.Post, int64, error) {
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePostsRepo) Get(_ context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePostsRepo) SetStatus(_ context.Context, id string, status models.PostStatus) error {
	p, ok := f.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePostsRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.posts, id)
	return nil
}

// --- emails ---

type fakeEmailsRepo struct {
	emails map[string]*models.Email
}

func (f *fakeEmailsRepo) List(context.Context, models.PageRequest, models.EmailFilter) ([]models.Email, int64, error) {
	out := []models.Email{}
	for _, e := range f.emails {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmailsRepo) Get(_ context.Context, id string) (*models.Email, error) {
	e, ok := f.emails[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeEmailsRepo) MarkRead(_ context.Context, id string) error {
	e, ok := f.emails[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.Read = true
	return nil
}

func (f *fakeEmailsRepo) SetStarred(_ context.Context, id string, starred bool) error {
	e, ok := f.emails[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.Starred = starred
	return nil
}

func (f *fakeEmailsRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.emails[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.emails, id)
	return nil
}

func (f *fakeEmailsRepo) Create(_ context.Context, e *models.Email) (*models.Email, error) {
	e.ID = "sent-1"
	e.ReceivedAt = time.Now()
	f.emails[e.ID] = e
	return e, nil
}

// --- audit logs ---

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []models.AuditLog
	createErr error
	eachErr   error
}

func (f *fakeAuditRepo) List(context.Context, models.PageRequest, models.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return append([]models.AuditLog(nil), f.entries...), int64(len(f.entries)), nil
}

func (f *fakeAuditRepo) Get(_ context.Context, id string) (*models.AuditLog, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAuditRepo) Create(_ context.Context, e *models.AuditLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = "a" + string(rune('0'+len(f.entries)))
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditRepo) Each(_ context.Context, _ models.AuditLogFilter, fn func(models.AuditLog) error) error {
	if f.eachErr != nil {
		return f.eachErr
	}
	for _, e := range append([]models.AuditLog(nil), f.entries...) {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAuditRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- conversations ---

type fakeConversationsRepo struct {
	convs map[string]*models.Conversation
	msgs  map[string][]models.ChatMessage
}

func (f *fakeConversationsRepo) List(context.Context, models.PageRequest, models.ConversationFilter) ([]models.Conversation, int64, error) {
	out := []models.Conversation{}
	for _, c := range f.convs {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeConversationsRepo) Get(_ context.Context, id string) (*models.Conversation, error) {
	c, ok := f.convs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConversationsRepo) SetStatus(_ context.Context, id string, status models.ConversationStatus) error {
	c, ok := f.convs[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeConversationsRepo) Messages(_ context.Context, id string) ([]models.ChatMessage, error) {
	return append([]models.ChatMessage{}, f.msgs[id]...), nil
}

func (f *fakeConversationsRepo) AddMessage(_ context.Context, m *models.ChatMessage) error {
	m.ID = "m-new"
	m.CreatedAt = time.Now()
	f.msgs[m.ConversationID] = append(f.msgs[m.ConversationID], *m)
	return nil
}

// --- payments ---

type fakePaymentsRepo struct {
	items   []models.Payment
	summary *models.PaymentSummary
	points  []models.UsagePoint
	err     error

	gotRange models.DateRange
	gotGran  models.Granularity
}

func (f *fakePaymentsRepo) List(context.Context, models.PageRequest, models.PaymentFilter) ([]models.Payment, int64, error) {
	return f.items, int64(len(f.items)), f.err
}

func (f *fakePaymentsRepo) Summary(_ context.Context, r models.DateRange) (*models.PaymentSummary, error) {
	f.gotRange = r
	return f.summary, f.err
}

func (f *fakePaymentsRepo) Usage(_ context.Context, r models.DateRange, g models.Granularity) ([]models.UsagePoint, error) {
	f.gotRange, f.gotGran = r, g
	return f.points, f.err
}

// --- manager ---

type fakeRepoManager struct {
	users    *fakeUsersRepo
	refresh  *fakeRefreshRepo
	posts    *fakePostsRepo
	emails   *fakeEmailsRepo
	audit    *fakeAuditRepo
	convs    *fakeConversationsRepo
	payments *fakePaymentsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newFakeUsers(),
		refresh:  newFakeRefresh(),
		posts:    &fakePostsRepo{posts: map[string]*models.Post{}},
		emails:   &fakeEmailsRepo{emails: map[string]*models.Email{}},
		audit:    &fakeAuditRepo{},
		convs:    &fakeConversationsRepo{convs: map[string]*models.Conversation{}, msgs: map[string][]models.ChatMessage{}},
		payments: &fakePaymentsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository { return m.posts }
func (m *fakeRepoManager) Emails(dbx.DBTX) emails.Repository { return m.emails }
func (m *fakeRepoManager) AuditLogs(dbx.DBTX) auditlogs.Repository { return m.audit }
func (m *fakeRepoManager) Conversations(dbx.DBTX) conversations.Repository { return m.convs }
func (m *fakeRepoManager) Payments(dbx.DBTX) payments.Repository { return m.payments }

// --- object store ---

type fakeStore struct {
	key, contentType, body string
	putErr, presignErr     error
	ttl                    time.Duration
}

func (s *fakeStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.key, s.contentType, s.body = key, contentType, string(b)
	return nil
}

func (s *fakeStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	s.ttl = ttl
	return "https://s3.local/" + key + "?sig=1", nil
}

var testActor = Actor{ID: "admin-1", Email: "admin@example.com", RequestMeta: RequestMeta{IP: "10.0.0.1", UserAgent: "test"}}
