package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// AuditLogs lists audit entries, e.g. "audit action=user.ban from=2024-05-01".
func (a *App) AuditLogs(ctx context.Context, args []string) error {
	f := models.ParseAuditLogFilter(parseArgs(args))
	return a.openList(ctx, router.AuditLogs, func() error { return a.audit.SetFilters(ctx, f) })
}

func (a *App) AuditLog(ctx context.Context, args []string) error {
	id, err := argID("log", args)
	if err != nil {
		return err
	}
	l, err := a.audit.Get(ctx, id)
	if err != nil {
		return err
	}
	renderAuditLog(a.out, l)
	return nil
}

// Export exports the entries matching the current audit filters.
func (a *App) Export(ctx context.Context) error {
	link, err := a.audit.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Export ready, download link (valid for a limited time):")
	fmt.Fprintln(a.out, link)
	return nil
}
