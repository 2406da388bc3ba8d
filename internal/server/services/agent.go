package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
)

// AgentService lets admins supervise AI agent conversations: read them,
// take them over from the assistant, reply and close them.
type AgentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
}

func NewAgentService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService) *AgentService {
	return &AgentService{db: db, repomanager: m, audit: audit}
}

func (s *AgentService) List(ctx context.Context, p models.PageRequest, f models.ConversationFilter) (*models.Page[models.Conversation], error) {
	items, total, err := s.repomanager.Conversations(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

// Messages returns the conversation's messages; an unknown conversation
// yields common.ErrorNotFound rather than an empty list.
func (s *AgentService) Messages(ctx context.Context, id string) ([]models.ChatMessage, error) {
	repo := s.repomanager.Conversations(s.db)
	if _, err := repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return repo.Messages(ctx, id)
}

// Takeover hands the conversation to a human agent. Taking over twice is
// a no-op; a closed conversation cannot be taken over.
func (s *AgentService) Takeover(ctx context.Context, actor Actor, id string) error {
	return s.audit.record(ctx, actor, "conversation.takeover", "conversation", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Conversations(tx)
		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.Status == models.ConversationClosed {
			return fmt.Errorf("%w: conversation is closed", common.ErrorConflict)
		}
		return repo.SetStatus(ctx, id, models.ConversationHuman)
	})
}

// Reply posts an agent message, taking the conversation over if the
// assistant still owns it.
func (s *AgentService) Reply(ctx context.Context, actor Actor, id, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty reply", common.ErrorValidation)
	}

	msg := &models.ChatMessage{ConversationID: id, Role: models.MessageFromAgent, Content: content}
	err := s.audit.record(ctx, actor, "conversation.reply", "conversation", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Conversations(tx)
		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.Status == models.ConversationClosed {
			return fmt.Errorf("%w: conversation is closed", common.ErrorConflict)
		}
		if c.Status != models.ConversationHuman {
			if err := repo.SetStatus(ctx, id, models.ConversationHuman); err != nil {
				return err
			}
		}
		return repo.AddMessage(ctx, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *AgentService) Close(ctx context.Context, actor Actor, id string) error {
	return s.audit.record(ctx, actor, "conversation.close", "conversation", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Conversations(tx).SetStatus(ctx, id, models.ConversationClosed)
	})
}

// Analyze summarizes the conversation's message flow. A conversation
// without messages yields common.ErrNoMessages.
func (s *AgentService) Analyze(ctx context.Context, id string) (*models.ConversationAnalysis, error) {
	repo := s.repomanager.Conversations(s.db)
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	msgs, err := repo.Messages(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, common.ErrNoMessages
	}
	a := AnalyzeMessages(msgs)
	a.ConversationID = c.ID
	a.HumanTakeover = a.HumanTakeover || c.Status == models.ConversationHuman
	return &a, nil
}

// AnalyzeMessages computes message statistics over msgs, which must be in
// chronological order. The response time of a user message is the delay
// until the next assistant or agent message.
func AnalyzeMessages(msgs []models.ChatMessage) models.ConversationAnalysis {
	var a models.ConversationAnalysis
	a.MessageCount = len(msgs)
	if len(msgs) == 0 {
		return a
	}

	first, last := msgs[0].CreatedAt, msgs[len(msgs)-1].CreatedAt
	a.FirstMessageAt, a.LastMessageAt = &first, &last

	var total float64
	var answered int
	pending := -1
	for i, m := range msgs {
		switch m.Role {
		case models.MessageFromUser:
			a.UserMessages++
			if pending < 0 {
				pending = i
			}
		case models.MessageFromAssistant, models.MessageFromAgent:
			if m.Role == models.MessageFromAgent {
				a.AgentMessages++
				a.HumanTakeover = true
			} else {
				a.AssistantMessages++
			}
			if pending >= 0 {
				total += m.CreatedAt.Sub(msgs[pending].CreatedAt).Seconds()
				answered++
				pending = -1
			}
		}
	}
	if answered > 0 {
		a.AvgResponseSeconds = total / float64(answered)
	}
	return a
}
