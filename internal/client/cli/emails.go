package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Emails lists a mailbox folder, e.g. "emails folder=sent" or "emails unread".
func (a *App) Emails(ctx context.Context, args []string) error {
	f := models.ParseEmailFilter(parseArgs(args))
	return a.openList(ctx, router.Emails, func() error { return a.emails.SetFilters(ctx, f) })
}

// Email shows a message and marks it read.
func (a *App) Email(ctx context.Context, args []string) error {
	id, err := argID("email", args)
	if err != nil {
		return err
	}
	e, err := a.emails.Open(ctx, id)
	if err != nil {
		return err
	}
	renderEmail(a.out, e)
	return nil
}

func (a *App) Star(ctx context.Context, args []string) error {
	return a.mutate("star", args, func(id string) error { return a.emails.Star(ctx, id, true) }, "Email %s starred.")
}

func (a *App) Unstar(ctx context.Context, args []string) error {
	return a.mutate("unstar", args, func(id string) error { return a.emails.Star(ctx, id, false) }, "Email %s unstarred.")
}

func (a *App) RemoveEmail(ctx context.Context, args []string) error {
	return a.remove("rmemail", "Email", args, func(id string) error { return a.emails.Delete(ctx, id) })
}

func (a *App) Compose(ctx context.Context) error {
	to, err := GetSimpleText(a.reader, "To", a.out)
	if err != nil {
		return err
	}
	subject, err := GetSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	e, err := a.emails.Send(ctx, to, subject, body)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent to %s (id %s).\n", e.To, e.ID)
	return nil
}
