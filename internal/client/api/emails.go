package api

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Emails struct {
	d transport.Doer
}

func (e *Emails) List(ctx context.Context, p models.PageRequest, f models.EmailFilter) (models.Page[models.Email], error) {
	return transport.Get[models.Page[models.Email]](ctx, e.d, "/emails", listQuery(p, f))
}

func (e *Emails) Get(ctx context.Context, id string) (models.Email, error) {
	return transport.Get[models.Email](ctx, e.d, transport.PathJoin("emails", id), nil)
}

func (e *Emails) MarkRead(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Put[models.ActionResult](ctx, e.d, transport.PathJoin("emails", id, "read"), nil)
}

func (e *Emails) Star(ctx context.Context, id string, starred bool) (models.ActionResult, error) {
	return transport.Put[models.ActionResult](ctx, e.d, transport.PathJoin("emails", id, "star"),
		models.StarRequest{Starred: starred})
}

func (e *Emails) Delete(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Delete[models.ActionResult](ctx, e.d, transport.PathJoin("emails", id))
}

func (e *Emails) Send(ctx context.Context, req models.SendEmailRequest) (models.Email, error) {
	return transport.Post[models.Email](ctx, e.d, "/emails", req)
}
