package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// reload re-fetches the current page after an action. Being overtaken by
// a newer fetch is not a failure here.
func reload[T, F any](ctx context.Context, p *resource.Paginated[T, F]) error {
	if err := p.Load(ctx); err != nil && !errors.Is(err, resource.ErrSuperseded) {
		return err
	}
	return nil
}

// act runs an action returning an ActionResult, then re-fetches.
func act[T, F any](ctx context.Context, p *resource.Paginated[T, F], do func() (models.ActionResult, error)) error {
	res, err := do()
	if err != nil {
		return err
	}
	if err := checkResult(res); err != nil {
		return err
	}
	return reload(ctx, p)
}
