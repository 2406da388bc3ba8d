package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/client/services"
	"github.com/dmitrijs2005/adminconsole/internal/client/session"
	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/common"
)

// Login asks for credentials, signs in and waits for the session to become
// usable. A rejected sign-in is reported here and is not an error of the
// console itself.
func (a *App) Login(ctx context.Context) error {
	last := a.auth.LastEmail(ctx)
	prompt := "Email"
	if last != "" {
		prompt = fmt.Sprintf("Email [%s]", last)
	}

	email, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if _, err := a.auth.Login(ctx, email, string(pw)); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("Sign-in failed: "+transport.Message(err)))
		return nil
	}

	a.Navigate(ctx, router.AuthSuccess)
	return a.bootstrap(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)

	a.mu.Lock()
	a.user = nil
	a.route = router.Login
	a.section = ""
	a.mu.Unlock()

	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, err := a.auth.Check(ctx)
	if err != nil {
		return err
	}

	fields := []field{
		{"id", u.ID},
		{"email", u.Email},
		{"role", string(u.Role)},
	}
	if info, ok := session.PeekAccessToken(a.jar, a.base); ok && !info.ExpiresAt.IsZero() {
		left := time.Until(info.ExpiresAt).Round(time.Second)
		fields = append(fields, field{"token expires", fmt.Sprintf("%s (in %s)", formatTime(info.ExpiresAt), left)})
	}
	renderFields(a.out, u.Name, fields)
	return nil
}

func (a *App) Overview(ctx context.Context) error {
	a.Navigate(ctx, router.Dashboard)

	o, err := services.LoadOverview(ctx, a.api.Analytics, a.api.Users, a.api.Emails, a.cfg.PageSize)
	if err != nil {
		return err
	}

	renderSummary(a.out, o.Payments)
	fmt.Fprintln(a.out)
	renderUsage(a.out, o.Usage)
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%s %d\n\n", keyStyle.Render("Unread emails:"), o.UnreadEmails)

	fmt.Fprintln(a.out, titleStyle.Render("Newest users"))
	rows := make([][]string, 0, len(o.Users.Content))
	for _, u := range o.Users.Content {
		rows = append(rows, userRow(u))
	}
	fmt.Fprintln(a.out, renderTable(userHeaders, rows))
	return nil
}

// Go moves to a route typed by the user, e.g. "go /dashboard/users".
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: go <path>", errUsage)
	}
	a.Navigate(ctx, router.Resolve(args[0]))

	r := a.currentRoute()
	switch r {
	case router.Dashboard:
		return a.Overview(ctx)
	case router.Login:
		a.resume(ctx)
		return nil
	}
	if s, ok := a.sections[r]; ok {
		if err := s.pager.Load(ctx); err != nil {
			return err
		}
		s.render(a.out)
		return nil
	}
	fmt.Fprintln(a.out, titleStyle.Render(r.Title()))
	return nil
}
