package models

import (
	"net/url"
	"time"
)

type PostStatus string

const (
	PostPublished PostStatus = "published"
	PostHidden    PostStatus = "hidden"
	PostDraft     PostStatus = "draft"
)

func (s PostStatus) Valid() bool {
	return s == PostPublished || s == PostHidden || s == PostDraft
}

type Post struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     PostStatus `json:"status"`
	Likes      int        `json:"likes"`
	Comments   int        `json:"comments"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type PostFilter struct {
	Search   string
	Status   PostStatus
	AuthorID string
}

func (f PostFilter) Apply(v url.Values) url.Values {
	setIf(v, "search", f.Search)
	setIf(v, "status", string(f.Status))
	setIf(v, "authorId", f.AuthorID)
	return v
}

func ParsePostFilter(v url.Values) PostFilter {
	return PostFilter{
		Search:   v.Get("search"),
		Status:   PostStatus(v.Get("status")),
		AuthorID: v.Get("authorId"),
	}
}
