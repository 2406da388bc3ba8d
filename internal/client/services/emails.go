package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type EmailsAPI interface {
	List(ctx context.Context, p models.PageRequest, f models.EmailFilter) (models.Page[models.Email], error)
	Get(ctx context.Context, id string) (models.Email, error)
	MarkRead(ctx context.Context, id string) (models.ActionResult, error)
	Star(ctx context.Context, id string, starred bool) (models.ActionResult, error)
	Delete(ctx context.Context, id string) (models.ActionResult, error)
	Send(ctx context.Context, req models.SendEmailRequest) (models.Email, error)
}

type EmailsView struct {
	*resource.Paginated[models.Email, models.EmailFilter]
	api EmailsAPI
}

// NewEmailsView lists the inbox by default. The starred filter is applied
// on the client as well, since folders other than the inbox may ignore it.
func NewEmailsView(api EmailsAPI, pageSize int) *EmailsView {
	fetch := func(ctx context.Context, q resource.Query[models.EmailFilter]) (models.Page[models.Email], error) {
		if q.Filters.Folder == "" {
			q.Filters.Folder = models.FolderInbox
		}
		return api.List(ctx, q.PageRequest(), q.Filters)
	}
	p := resource.New(fetch, pageSize).WithMatcher(func(e models.Email, f models.EmailFilter) bool {
		return !f.Starred || e.Starred
	})
	return &EmailsView{Paginated: p, api: api}
}

// Open fetches one email and marks it read if it was not.
func (v *EmailsView) Open(ctx context.Context, id string) (models.Email, error) {
	e, err := v.api.Get(ctx, id)
	if err != nil {
		return models.Email{}, err
	}
	if !e.Read {
		if err := v.MarkRead(ctx, id); err != nil {
			return e, err
		}
		e.Read = true
	}
	return e, nil
}

func (v *EmailsView) MarkRead(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.MarkRead(ctx, id) })
}

func (v *EmailsView) Star(ctx context.Context, id string, starred bool) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Star(ctx, id, starred) })
}

func (v *EmailsView) Delete(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Delete(ctx, id) })
}

func (v *EmailsView) Send(ctx context.Context, to, subject, body string) (models.Email, error) {
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(subject) == "" {
		return models.Email{}, fmt.Errorf("recipient and subject: %w", ErrEmptyField)
	}
	e, err := v.api.Send(ctx, models.SendEmailRequest{To: to, Subject: subject, Body: body})
	if err != nil {
		return models.Email{}, err
	}
	return e, reload(ctx, v.Paginated)
}

// UnreadCount asks for the number of unread inbox emails.
func UnreadCount(ctx context.Context, api EmailsAPI) (int64, error) {
	page, err := api.List(ctx, models.PageRequest{Size: 1},
		models.EmailFilter{Folder: models.FolderInbox, UnreadOnly: true})
	if err != nil {
		return 0, err
	}
	return page.TotalElements, nil
}
