package conversations

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.ConversationFilter) ([]models.Conversation, int64, error)
	Get(ctx context.Context, id string) (*models.Conversation, error)
	SetStatus(ctx context.Context, id string, status models.ConversationStatus) error
	Messages(ctx context.Context, conversationID string) ([]models.ChatMessage, error)
	AddMessage(ctx context.Context, m *models.ChatMessage) error
}
