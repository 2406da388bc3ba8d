package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// openList switches to section r, applies the change and prints the page.
func (a *App) openList(ctx context.Context, r router.Route, change func() error) error {
	a.Navigate(ctx, r)
	if err := change(); err != nil && !errors.Is(err, resource.ErrSuperseded) {
		return err
	}
	a.sections[r].render(a.out)
	return nil
}

// paginate applies move to the current section and prints the result.
func (a *App) paginate(move func(p pager) error) error {
	s, err := a.currentSection()
	if err != nil {
		return err
	}
	if err := move(s.pager); err != nil && !errors.Is(err, resource.ErrSuperseded) {
		return err
	}
	s.render(a.out)
	return nil
}

func (a *App) Next(ctx context.Context) error {
	return a.paginate(func(p pager) error { return p.NextPage(ctx) })
}

func (a *App) Prev(ctx context.Context) error {
	return a.paginate(func(p pager) error { return p.PrevPage(ctx) })
}

func (a *App) Retry(ctx context.Context) error {
	return a.paginate(func(p pager) error { return p.Load(ctx) })
}

// Page jumps to a 1-based page number.
func (a *App) Page(ctx context.Context, args []string) error {
	n, err := argInt("page", args)
	if err != nil {
		return err
	}
	return a.paginate(func(p pager) error { return p.SetPage(ctx, n-1) })
}

func (a *App) Size(ctx context.Context, args []string) error {
	n, err := argInt("size", args)
	if err != nil {
		return err
	}
	if n > models.MaxPageSize {
		n = models.MaxPageSize
	}
	return a.paginate(func(p pager) error { return p.SetPageSize(ctx, n) })
}

// Sort orders the current section: "sort <field> [asc|desc]". A bare
// "sort" clears the ordering.
func (a *App) Sort(ctx context.Context, args []string) error {
	by, dir := "", models.SortDir("")
	if len(args) > 0 {
		by, dir = args[0], models.SortAsc
	}
	if len(args) > 1 {
		switch d := models.SortDir(strings.ToLower(args[1])); d {
		case models.SortAsc, models.SortDesc:
			dir = d
		default:
			return fmt.Errorf("%w: sort <field> [asc|desc]", errUsage)
		}
	}
	return a.paginate(func(p pager) error { return p.SetSort(ctx, by, dir) })
}

// confirm asks a yes/no question; anything but "y" or "yes" is a no.
func (a *App) confirm(question string) bool {
	answer, err := GetSimpleText(a.reader, question+" [y/N]", a.out)
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// mutate runs an action on the record named by the first argument.
func (a *App) mutate(cmd string, args []string, do func(id string) error, done string) error {
	id, err := argID(cmd, args)
	if err != nil {
		return err
	}
	if err := do(id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, done+"\n", id)
	return nil
}

func (a *App) remove(cmd, what string, args []string, do func(id string) error) error {
	id, err := argID(cmd, args)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Delete %s %s?", what, id)) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	return a.mutate(cmd, args, do, what+" %s deleted.")
}
