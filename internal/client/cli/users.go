package cli

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Users lists users, e.g. "users role=admin status=banned search=ann".
func (a *App) Users(ctx context.Context, args []string) error {
	f := models.ParseUserFilter(parseArgs(args))
	return a.openList(ctx, router.Users, func() error { return a.users.SetFilters(ctx, f) })
}

func (a *App) User(ctx context.Context, args []string) error {
	id, err := argID("user", args)
	if err != nil {
		return err
	}
	u, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}
	renderUser(a.out, u)
	return nil
}

func (a *App) Ban(ctx context.Context, args []string) error {
	return a.mutate("ban", args, func(id string) error { return a.users.Ban(ctx, id) }, "User %s banned.")
}

func (a *App) Activate(ctx context.Context, args []string) error {
	return a.mutate("activate", args, func(id string) error { return a.users.Activate(ctx, id) }, "User %s activated.")
}

func (a *App) RemoveUser(ctx context.Context, args []string) error {
	return a.remove("rmuser", "User", args, func(id string) error { return a.users.Delete(ctx, id) })
}
