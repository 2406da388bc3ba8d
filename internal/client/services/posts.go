package services

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type PostsAPI interface {
	List(ctx context.Context, p models.PageRequest, f models.PostFilter) (models.Page[models.Post], error)
	Get(ctx context.Context, id string) (models.Post, error)
	SetStatus(ctx context.Context, id string, status models.PostStatus) (models.ActionResult, error)
	Delete(ctx context.Context, id string) (models.ActionResult, error)
}

type PostsView struct {
	*resource.Paginated[models.Post, models.PostFilter]
	api PostsAPI
}

func NewPostsView(api PostsAPI, pageSize int) *PostsView {
	fetch := func(ctx context.Context, q resource.Query[models.PostFilter]) (models.Page[models.Post], error) {
		return api.List(ctx, q.PageRequest(), q.Filters)
	}
	return &PostsView{Paginated: resource.New(fetch, pageSize), api: api}
}

func (v *PostsView) Get(ctx context.Context, id string) (models.Post, error) {
	return v.api.Get(ctx, id)
}

// SetStatus publishes, hides or drafts a post.
func (v *PostsView) SetStatus(ctx context.Context, id string, s models.PostStatus) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.SetStatus(ctx, id, s) })
}

func (v *PostsView) Delete(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Delete(ctx, id) })
}
