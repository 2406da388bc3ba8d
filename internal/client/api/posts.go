package api

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Posts struct {
	d transport.Doer
}

func (p *Posts) List(ctx context.Context, req models.PageRequest, f models.PostFilter) (models.Page[models.Post], error) {
	return transport.Get[models.Page[models.Post]](ctx, p.d, "/posts", listQuery(req, f))
}

func (p *Posts) Get(ctx context.Context, id string) (models.Post, error) {
	return transport.Get[models.Post](ctx, p.d, transport.PathJoin("posts", id), nil)
}

func (p *Posts) SetStatus(ctx context.Context, id string, status models.PostStatus) (models.ActionResult, error) {
	return transport.Patch[models.ActionResult](ctx, p.d, transport.PathJoin("posts", id, "status"),
		models.StatusChange{Status: string(status)})
}

func (p *Posts) Delete(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Delete[models.ActionResult](ctx, p.d, transport.PathJoin("posts", id))
}
