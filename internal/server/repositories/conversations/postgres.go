// Package conversations provides the PostgreSQL-backed store of AI agent
// conversations and their messages.
package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

const (
	fromConversations = `conversations c JOIN users u ON u.id = c.user_id`

	selectConversations = `SELECT c.id, c.user_id, u.email, c.title, c.status,
		(SELECT COUNT(*) FROM chat_messages m WHERE m.conversation_id = c.id) AS message_count,
		(SELECT MAX(m.created_at) FROM chat_messages m WHERE m.conversation_id = c.id) AS last_message_at,
		c.created_at
	FROM ` + fromConversations
)

var sortColumns = map[string]string{
	"title":         "c.title",
	"status":        "c.status",
	"userEmail":     "u.email",
	"messageCount":  "message_count",
	"lastMessageAt": "last_message_at",
	"createdAt":     "c.created_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanConversation(s dbx.Scanner) (models.Conversation, error) {
	var c models.Conversation
	var last sql.NullTime
	if err := s.Scan(&c.ID, &c.UserID, &c.UserEmail, &c.Title, &c.Status, &c.MessageCount, &last, &c.CreatedAt); err != nil {
		return c, err
	}
	if last.Valid {
		t := last.Time
		c.LastMessageAt = &t
	}
	return c, nil
}

func scanMessage(s dbx.Scanner) (models.ChatMessage, error) {
	var m models.ChatMessage
	err := s.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt)
	return m, err
}

func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.ConversationFilter) ([]models.Conversation, int64, error) {
	q := dbx.NewListQuery()
	q.WhereIf(f.Status != "", "c.status = ?", string(f.Status))
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q.Where("(c.title ILIKE ? OR u.email ILIKE ?)", like, like)
	}

	total, err := q.Count(ctx, r.db, fromConversations)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := selectConversations + q.WhereClause() + q.OrderBy(sortColumns, p.SortBy, "c.created_at", p.Desc()) + q.Page(p.Page, p.Size)
	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanConversation)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx, selectConversations+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.ConversationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE conversations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Messages returns the conversation's messages in chronological order.
func (r *PostgresRepository) Messages(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	query := `SELECT id, conversation_id, role, content, created_at FROM chat_messages
		WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) AddMessage(ctx context.Context, m *models.ChatMessage) error {
	query :=
		`INSERT INTO chat_messages (conversation_id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, m.ConversationID, string(m.Role), m.Content).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
