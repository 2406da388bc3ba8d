package api

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Users struct {
	d transport.Doer
}

func (u *Users) List(ctx context.Context, p models.PageRequest, f models.UserFilter) (models.Page[models.User], error) {
	return transport.Get[models.Page[models.User]](ctx, u.d, "/users", listQuery(p, f))
}

func (u *Users) Get(ctx context.Context, id string) (models.User, error) {
	return transport.Get[models.User](ctx, u.d, transport.PathJoin("users", id), nil)
}

func (u *Users) SetStatus(ctx context.Context, id string, status models.UserStatus) (models.ActionResult, error) {
	return transport.Patch[models.ActionResult](ctx, u.d, transport.PathJoin("users", id, "status"),
		models.StatusChange{Status: string(status)})
}

func (u *Users) Delete(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Delete[models.ActionResult](ctx, u.d, transport.PathJoin("users", id))
}
