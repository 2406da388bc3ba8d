package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type AgentAPI interface {
	Conversations(ctx context.Context, p models.PageRequest, f models.ConversationFilter) (models.Page[models.Conversation], error)
	Messages(ctx context.Context, id string) ([]models.ChatMessage, error)
	Takeover(ctx context.Context, id string) (models.ActionResult, error)
	Reply(ctx context.Context, id, content string) (models.ChatMessage, error)
	Analyze(ctx context.Context, id string) (models.ConversationAnalysis, error)
	Close(ctx context.Context, id string) (models.ActionResult, error)
}

type ConversationsView struct {
	*resource.Paginated[models.Conversation, models.ConversationFilter]
	api AgentAPI
}

// NewConversationsView matches the search text against the title and the
// user's email on the client too.
func NewConversationsView(api AgentAPI, pageSize int) *ConversationsView {
	fetch := func(ctx context.Context, q resource.Query[models.ConversationFilter]) (models.Page[models.Conversation], error) {
		return api.Conversations(ctx, q.PageRequest(), q.Filters)
	}
	p := resource.New(fetch, pageSize).WithMatcher(matchConversation)
	return &ConversationsView{Paginated: p, api: api}
}

func matchConversation(c models.Conversation, f models.ConversationFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.UserEmail), q)
}

func (v *ConversationsView) Messages(ctx context.Context, id string) ([]models.ChatMessage, error) {
	return v.api.Messages(ctx, id)
}

func (v *ConversationsView) Takeover(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Takeover(ctx, id) })
}

func (v *ConversationsView) Close(ctx context.Context, id string) error {
	return act(ctx, v.Paginated, func() (models.ActionResult, error) { return v.api.Close(ctx, id) })
}

func (v *ConversationsView) Reply(ctx context.Context, id, content string) (models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return models.ChatMessage{}, fmt.Errorf("reply: %w", ErrEmptyField)
	}
	m, err := v.api.Reply(ctx, id, content)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return m, reload(ctx, v.Paginated)
}

// Analyze turns the server's 422 into ErrNothingToAnalyze; other failures
// are normalized like any request.
func (v *ConversationsView) Analyze(ctx context.Context, id string) (models.ConversationAnalysis, error) {
	a, err := v.api.Analyze(ctx, id)
	if err == nil {
		return a, nil
	}
	var se *transport.StatusError
	if errors.As(err, &se) {
		switch se.Status {
		case http.StatusUnprocessableEntity:
			return models.ConversationAnalysis{}, ErrNothingToAnalyze
		case http.StatusNotFound:
			return models.ConversationAnalysis{}, transport.ErrNotFound
		}
	}
	return models.ConversationAnalysis{}, err
}
