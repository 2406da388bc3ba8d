package services

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type UsersAPI interface {
	List(ctx context.Context, p models.PageRequest, f models.UserFilter) (models.Page[models.User], error)
	Get(ctx context.Context, id string) (models.User, error)
	SetStatus(ctx context.Context, id string, status models.UserStatus) (models.ActionResult, error)
	Delete(ctx context.Context, id string) (models.ActionResult, error)
}

type UsersView struct {
	*resource.Paginated[models.User, models.UserFilter]
	api UsersAPI
}

func NewUsersView(api UsersAPI, pageSize int) *UsersView {
	fetch := func(ctx context.Context, q resource.Query[models.UserFilter]) (models.Page[models.User], error) {
		return api.List(ctx, q.PageRequest(), q.Filters)
	}
	return &UsersView{Paginated: resource.New(fetch, pageSize), api: api}
}

func (v *UsersView) Get(ctx context.Context, id string) (models.User, error) {
	return v.api.Get(ctx, id)
}

func (v *UsersView) Ban(ctx context.Context, id string) error {
	return v.setStatus(ctx, id, models.UserBanned)
}

func (v *UsersView) Activate(ctx context.Context, id string) error {
	return v.setStatus(ctx, id, models.UserActive)
}

func (v *UsersView) Delete(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Delete(ctx, id) })
}

func (v *UsersView) setStatus(ctx context.Context, id string, s models.UserStatus) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.SetStatus(ctx, id, s) })
}
