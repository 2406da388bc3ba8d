package models

import (
	"net/url"
	"time"
)

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationHuman  ConversationStatus = "human"
	ConversationClosed ConversationStatus = "closed"
)

type Conversation struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	UserEmail     string             `json:"userEmail"`
	Title         string             `json:"title"`
	Status        ConversationStatus `json:"status"`
	MessageCount  int                `json:"messageCount"`
	LastMessageAt *time.Time         `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type MessageRole string

const (
	MessageFromUser      MessageRole = "user"
	MessageFromAssistant MessageRole = "assistant"
	MessageFromAgent     MessageRole = "agent"
)

type ChatMessage struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversationId"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"createdAt"`
}

type ConversationFilter struct {
	Status ConversationStatus
	Search string
}

func (f ConversationFilter) Apply(v url.Values) url.Values {
	setIf(v, "status", string(f.Status))
	setIf(v, "search", f.Search)
	return v
}

func ParseConversationFilter(v url.Values) ConversationFilter {
	return ConversationFilter{
		Status: ConversationStatus(v.Get("status")),
		Search: v.Get("search"),
	}
}

type ReplyRequest struct {
	Content string `json:"content"`
}

// ConversationAnalysis summarizes one conversation's message flow.
type ConversationAnalysis struct {
	ConversationID     string     `json:"conversationId"`
	MessageCount       int        `json:"messageCount"`
	UserMessages       int        `json:"userMessages"`
	AssistantMessages  int        `json:"assistantMessages"`
	AgentMessages      int        `json:"agentMessages"`
	AvgResponseSeconds float64    `json:"avgResponseSeconds"`
	HumanTakeover      bool       `json:"humanTakeover"`
	FirstMessageAt     *time.Time `json:"firstMessageAt,omitempty"`
	LastMessageAt      *time.Time `json:"lastMessageAt,omitempty"`
}
