package models

import (
	"net/url"
	"strconv"
	"time"
)

type EmailFolder string

const (
	FolderInbox EmailFolder = "inbox"
	FolderSent  EmailFolder = "sent"
	FolderTrash EmailFolder = "trash"
)

type Email struct {
	ID         string      `json:"id"`
	Folder     EmailFolder `json:"folder"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	Read       bool        `json:"read"`
	Starred    bool        `json:"starred"`
	ReceivedAt time.Time   `json:"receivedAt"`
}

type EmailFilter struct {
	Folder     EmailFolder
	UnreadOnly bool
	Starred    bool
	Search     string
}

func (f EmailFilter) Apply(v url.Values) url.Values {
	setIf(v, "folder", string(f.Folder))
	if f.UnreadOnly {
		v.Set("unread", "true")
	}
	if f.Starred {
		v.Set("starred", "true")
	}
	setIf(v, "search", f.Search)
	return v
}

func ParseEmailFilter(v url.Values) EmailFilter {
	unread, _ := strconv.ParseBool(v.Get("unread"))
	starred, _ := strconv.ParseBool(v.Get("starred"))
	return EmailFilter{
		Folder:     EmailFolder(v.Get("folder")),
		UnreadOnly: unread,
		Starred:    starred,
		Search:     v.Get("search"),
	}
}

type StarRequest struct {
	Starred bool `json:"starred"`
}

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
