package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"

	"github.com/dmitrijs2005/adminconsole/internal/client/api"
	"github.com/dmitrijs2005/adminconsole/internal/client/config"
	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/client/services"
	"github.com/dmitrijs2005/adminconsole/internal/client/session"
	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/logging"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

var errNoSection = errors.New("open a list first (users, posts, audit, emails, chats, payments)")

// pager is the part of resource.Paginated the paging commands need.
type pager interface {
	Load(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	SetPage(ctx context.Context, page int) error
	SetPageSize(ctx context.Context, size int) error
	SetSort(ctx context.Context, by string, dir models.SortDir) error
	Close()
}

type section struct {
	pager  pager
	render func(w io.Writer)
	stop   func()
}

// newSection binds a store to its table and reports every state change to
// onChange as a short prompt badge.
func newSection[T, F any](p *resource.Paginated[T, F], title string, headers []string, row func(T) []string, onChange func(string)) section {
	return section{
		pager: p,
		render: func(w io.Writer) {
			renderState(w, title, p.Snapshot(), headers, row)
		},
		stop: p.Subscribe(func(s resource.State[T, F]) {
			onChange(badge(s))
		}),
	}
}

func badge[T, F any](s resource.State[T, F]) string {
	switch {
	case s.Loading:
		return "loading"
	case s.Err != nil:
		return "error"
	case !s.Loaded:
		return ""
	}
	return fmt.Sprintf("%d/%d", s.Query.Page+1, max(s.TotalPages, 1))
}

// App is the interactive admin console. It is the router.Navigator of its
// transport client, so a failed session refresh lands here as a /login
// navigation.
type App struct {
	cfg   *config.Config
	log   logging.Logger
	store *session.Store
	jar   *session.Jar
	base  *url.URL
	api   *api.API

	auth     *services.AuthService
	users    *services.UsersView
	posts    *services.PostsView
	audit    *services.AuditLogsView
	emails   *services.EmailsView
	chats    *services.ConversationsView
	payments *services.PaymentsView
	sections map[router.Route]section

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	route    router.Route
	section  router.Route
	user     *models.CurrentUser
	askLogin bool
	badges   map[router.Route]string
}

// NewApp opens the session store and wires the API client and views.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewTextLogger(os.Stderr, c.Debug), os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening session store: %w", err)
	}

	jar, err := session.NewJar(store.Cookies, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := jar.Restore(ctx); err != nil {
		log.Warn(ctx, "failed to restore session cookies", "error", err)
	}

	a := &App{
		cfg:    c,
		log:    log,
		store:  store,
		jar:    jar,
		reader: bufio.NewReader(in),
		out:    out,
		route:  router.Login,
	}

	client, err := transport.New(transport.Options{
		BaseURL:       c.ServerBaseURL,
		Timeout:       c.RequestTimeout,
		Jar:           jar,
		Logger:        log,
		Navigator:     a,
		RedirectDelay: c.RedirectDelay,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	a.base, _ = url.Parse(client.BaseURL())
	a.wire(api.New(client), store, jar)
	return a, nil
}

func (a *App) wire(apis *api.API, store services.SessionStore, cookies services.CookieStore) {
	size := a.cfg.PageSize
	a.api = apis
	a.auth = services.NewAuthService(apis.Auth, store, cookies, a.log, a.cfg.AuthCheckAttempts, a.cfg.AuthCheckInterval)
	a.users = services.NewUsersView(apis.Users, size)
	a.posts = services.NewPostsView(apis.Posts, size)
	a.audit = services.NewAuditLogsView(apis.AuditLogs, size)
	a.emails = services.NewEmailsView(apis.Emails, size)
	a.chats = services.NewConversationsView(apis.Agent, size)
	a.payments = services.NewPaymentsView(apis.Analytics, size)

	a.sections = map[router.Route]section{
		router.Users:     newSection(a.users.Paginated, "Users", userHeaders, userRow, a.badgeFor(router.Users)),
		router.Posts:     newSection(a.posts.Paginated, "Posts", postHeaders, postRow, a.badgeFor(router.Posts)),
		router.AuditLogs: newSection(a.audit.Paginated, "Audit logs", auditHeaders, auditRow, a.badgeFor(router.AuditLogs)),
		router.Emails:    newSection(a.emails.Paginated, "Emails", emailHeaders, emailRow, a.badgeFor(router.Emails)),
		router.AIAgent:   newSection(a.chats.Paginated, "Conversations", conversationHeaders, conversationRow, a.badgeFor(router.AIAgent)),
		router.Analytics: newSection(a.payments.Paginated, "Payments", paymentHeaders, paymentRow, a.badgeFor(router.Analytics)),
	}
}

func (a *App) badgeFor(r router.Route) func(string) {
	return func(b string) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.badges == nil {
			a.badges = make(map[router.Route]string)
		}
		a.badges[r] = b
	}
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to the admin console (type 'help' for commands)")
	if _, ok := session.PeekAccessToken(a.jar, a.base); ok {
		a.Navigate(ctx, router.AuthSuccess)
	} else {
		a.Navigate(ctx, router.Login)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	for _, s := range a.sections {
		s.stop()
		s.pager.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close session store", "error", err)
		}
	}
}

// Navigate implements router.Navigator. It only records where the console
// should be; the REPL acts on it before the next prompt, so it is safe to
// call from any goroutine.
func (a *App) Navigate(ctx context.Context, r router.Route) {
	if !router.Known(r) {
		r = router.NotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if router.IsProtected(r) && a.user == nil {
		r = router.Login
	}
	a.log.Debug(ctx, "navigate", "route", string(r))

	a.route = r
	switch {
	case r == router.Login:
		a.user = nil
		a.askLogin = true
	case router.IsProtected(r) && r != router.Dashboard:
		a.section = r
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) currentRoute() router.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := string(a.route)
	if b := a.badges[a.route]; b != "" {
		st += " [" + b + "]"
	}
	if a.user == nil {
		return st
	}
	return fmt.Sprintf("%s %s", a.user.Email, st)
}

// resume performs the entry action of the current route: sign-in prompt
// for /login, session bootstrap for /auth/success.
func (a *App) resume(ctx context.Context) {
	a.mu.Lock()
	r, ask := a.route, a.askLogin
	a.askLogin = false
	a.mu.Unlock()

	switch r {
	case router.Login:
		if ask {
			fmt.Fprintln(a.out, titleStyle.Render(r.Title()))
			a.handleError(ctx, a.Login(ctx))
		}
	case router.AuthSuccess:
		a.handleError(ctx, a.bootstrap(ctx))
	}
}

// bootstrap waits for the server to accept the session cookies and enters
// the dashboard.
func (a *App) bootstrap(ctx context.Context) error {
	u, err := a.auth.AwaitSession(ctx)
	if err != nil {
		a.mu.Lock()
		a.user = nil
		a.route = router.Login
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
	a.Navigate(ctx, router.Dashboard)

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", u.Email, u.Role)
	return nil
}

// handleError prints err and, when it has an error page, moves there.
func (a *App) handleError(ctx context.Context, err error) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return
	}
	if r, ok := router.ForError(err); ok {
		a.Navigate(ctx, r)
		fmt.Fprintln(a.out, errorStyle.Render(r.Title()+": "+transport.Message(err)))
		return
	}
	switch {
	case errors.Is(err, resource.ErrNoPage):
		fmt.Fprintln(a.out, noticeStyle.Render("No more pages."))
		return
	case errors.Is(err, errUsage), errors.Is(err, errNoSection):
		fmt.Fprintln(a.out, noticeStyle.Render(err.Error()))
		return
	}
	fmt.Fprintln(a.out, errorStyle.Render("Error: "+transport.Message(err)))
}

func (a *App) currentSection() (section, error) {
	a.mu.Lock()
	r := a.section
	a.mu.Unlock()
	s, ok := a.sections[r]
	if !ok {
		return section{}, errNoSection
	}
	return s, nil
}
