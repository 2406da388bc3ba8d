package cli

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Posts lists posts, e.g. "posts status=hidden authorId=42".
func (a *App) Posts(ctx context.Context, args []string) error {
	f := models.ParsePostFilter(parseArgs(args))
	return a.openList(ctx, router.Posts, func() error { return a.posts.SetFilters(ctx, f) })
}

func (a *App) Post(ctx context.Context, args []string) error {
	id, err := argID("post", args)
	if err != nil {
		return err
	}
	p, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	renderPost(a.out, p)
	return nil
}

func (a *App) HidePost(ctx context.Context, args []string) error {
	return a.mutate("hide", args, func(id string) error {
		return a.posts.SetStatus(ctx, id, models.PostHidden)
	}, "Post %s hidden.")
}

func (a *App) PublishPost(ctx context.Context, args []string) error {
	return a.mutate("publish", args, func(id string) error {
		return a.posts.SetStatus(ctx, id, models.PostPublished)
	}, "Post %s published.")
}

func (a *App) RemovePost(ctx context.Context, args []string) error {
	return a.remove("rmpost", "Post", args, func(id string) error { return a.posts.Delete(ctx, id) })
}
