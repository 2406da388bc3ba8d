package models

import (
	"net/url"
	"time"
)

type AuditLog struct {
	ID           string    `json:"id"`
	ActorID      string    `json:"actorId"`
	ActorEmail   string    `json:"actorEmail"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId"`
	Details      string    `json:"details,omitempty"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuditLogFilter struct {
	Action       string
	Actor        string
	ResourceType string
	From         time.Time
	To           time.Time
}

func (f AuditLogFilter) Apply(v url.Values) url.Values {
	setIf(v, "action", f.Action)
	setIf(v, "actor", f.Actor)
	setIf(v, "resourceType", f.ResourceType)
	setTimeIf(v, "from", f.From)
	setTimeIf(v, "to", f.To)
	return v
}

func ParseAuditLogFilter(v url.Values) AuditLogFilter {
	return AuditLogFilter{
		Action:       v.Get("action"),
		Actor:        v.Get("actor"),
		ResourceType: v.Get("resourceType"),
		From:         parseTime(v.Get("from")),
		To:           parseTime(v.Get("to")),
	}
}

// AuditExportRequest is the JSON body of the export endpoint.
type AuditExportRequest struct {
	Action       string    `json:"action,omitempty"`
	Actor        string    `json:"actor,omitempty"`
	ResourceType string    `json:"resourceType,omitempty"`
	From         time.Time `json:"from,omitzero"`
	To           time.Time `json:"to,omitzero"`
}

func (r AuditExportRequest) Filter() AuditLogFilter {
	return AuditLogFilter{Action: r.Action, Actor: r.Actor, ResourceType: r.ResourceType, From: r.From, To: r.To}
}
