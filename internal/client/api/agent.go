package api

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Agent covers the AI support-chat conversations.
type Agent struct {
	d transport.Doer
}

func (a *Agent) Conversations(ctx context.Context, p models.PageRequest, f models.ConversationFilter) (models.Page[models.Conversation], error) {
	return transport.Get[models.Page[models.Conversation]](ctx, a.d, "/ai-agent/conversations", listQuery(p, f))
}

func (a *Agent) Messages(ctx context.Context, id string) ([]models.ChatMessage, error) {
	return transport.Get[[]models.ChatMessage](ctx, a.d, transport.PathJoin("ai-agent", "conversations", id, "messages"), nil)
}

// Takeover hands the conversation from the assistant to a human agent.
func (a *Agent) Takeover(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Post[models.ActionResult](ctx, a.d, transport.PathJoin("ai-agent", "conversations", id, "takeover"), nil)
}

func (a *Agent) Reply(ctx context.Context, id, content string) (models.ChatMessage, error) {
	return transport.Post[models.ChatMessage](ctx, a.d, transport.PathJoin("ai-agent", "conversations", id, "messages"),
		models.ReplyRequest{Content: content})
}

// Analyze returns the raw *transport.StatusError on failure so callers can
// tell "no messages" (422) from other failures.
func (a *Agent) Analyze(ctx context.Context, id string) (models.ConversationAnalysis, error) {
	return transport.Post[models.ConversationAnalysis](ctx, a.d, transport.PathJoin("ai-agent", "conversations", id, "analyze"), nil)
}

func (a *Agent) Close(ctx context.Context, id string) (models.ActionResult, error) {
	return transport.Post[models.ActionResult](ctx, a.d, transport.PathJoin("ai-agent", "conversations", id, "close"), nil)
}
